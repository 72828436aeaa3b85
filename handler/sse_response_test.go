package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/familyspace/handler"
)

func TestSSE(t *testing.T) {
	t.Parallel()

	t.Run("requires datastar", func(t *testing.T) {
		t.Parallel()
		err := handler.SSE(func(handler.StreamContext) error { return nil }).
			Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
		var httpErr handler.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("stream operations", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Accept", "text/event-stream")
		rec := httptest.NewRecorder()

		err := handler.SSE(func(stream handler.StreamContext) error {
			require.NoError(t, stream.SendComponent(text(`<div id="f">x</div>`)))
			require.NoError(t, stream.SendMultiple(
				handler.Patch(text(`<div id="a">A</div>`)),
				handler.Patch(text(`<p>B</p>`), handler.WithTarget("#list"), handler.WithPatchMode(handler.PatchAppend)),
			))
			require.NoError(t, stream.ExecuteScript("console.log(1)"))
			require.NoError(t, stream.Remove("#toast-1"))
			require.NoError(t, stream.Redirect("/account"))
			return nil
		}).Render(rec, req)
		require.NoError(t, err)

		body := rec.Body.String()
		assert.GreaterOrEqual(t, strings.Count(body, "event: datastar-patch-elements"), 4)
		assert.Contains(t, body, "selector #list")
		assert.Contains(t, body, "mode append")
		assert.Contains(t, body, "console.log(1)")
		assert.Contains(t, body, "selector #toast-1")
		assert.Contains(t, body, "mode remove")
		assert.Contains(t, body, "/account")
	})

	t.Run("concurrent writers", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Accept", "text/event-stream")

		err := handler.SSE(func(stream handler.StreamContext) error {
			var wg sync.WaitGroup
			for range 4 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = stream.SendComponent(text(`<p id="p">p</p>`))
				}()
			}
			wg.Wait()
			return nil
		}).Render(httptest.NewRecorder(), req)
		require.NoError(t, err)
	})

	t.Run("stream follows request context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest(http.MethodPost, "/", nil).WithContext(ctx)
		req.Header.Set("Accept", "text/event-stream")

		done := make(chan error, 1)
		go func() {
			done <- handler.SSE(func(stream handler.StreamContext) error {
				<-stream.Done()
				return stream.Err()
			}).Render(httptest.NewRecorder(), req)
		}()

		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("stream did not stop")
		}
	})
}
