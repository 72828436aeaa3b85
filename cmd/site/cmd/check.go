package cmd

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/familyspace/modules/site"
	"github.com/dmitrymomot/familyspace/pkg/form"
	"github.com/dmitrymomot/familyspace/pkg/i18n"
)

var errInvalid = errors.New("value is invalid")

var checkLang string

var checkCmd = &cobra.Command{
	Use:   "check <kind> <value>",
	Short: "Run one field predicate against a value",
	Long: `Run one field predicate against a value and print the result.

Kinds: email, password, age, birth-date, required-text, checkbox-required,
radio-group, required, number.

Examples:
  site check email user@example.com
  site check password 'Abcdef1!'
  site check birth-date 2000-06-15 --lang en`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkLang, "lang", i18n.DefaultLanguage, "Language of the printed message")
}

func runCheck(cmd *cobra.Command, args []string) error {
	kind, value := form.Kind(args[0]), args[1]

	c, err := form.NewController(form.Spec{
		Name:   "check",
		Fields: []form.FieldSpec{{Name: "value", Kind: kind}},
	})
	if err != nil {
		return err
	}
	fr, err := c.ValidateField(cmd.Context(), "value", form.NewValues(url.Values{"value": {value}}, nil))
	if err != nil {
		return err
	}

	tr, err := site.NewTranslator(cmd.Context(), checkLang, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if fr.Result.IsValid() {
		fmt.Fprintln(out, "valid")
	} else {
		fmt.Fprintln(out, "invalid:", site.MessageText(tr, checkLang, fr.Message()))
	}
	if strength, ok := fr.Result.Strength(); ok {
		fmt.Fprintf(out, "strength: %d\n", strength)
	}
	if age, ok := fr.Result.Age(); ok {
		fmt.Fprintf(out, "age: %d\n", age)
	}
	if !fr.Result.IsValid() {
		return errInvalid
	}
	return nil
}
