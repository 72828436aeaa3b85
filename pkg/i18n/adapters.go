package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// TranslationAdapter loads catalogs from some source.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves catalogs held in memory.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return map[string]map[string]any{}, nil
	}
	return a.Data, nil
}

// FSAdapter loads every file in dir that parser understands. Works with
// embed.FS as well as os.DirFS. Files are merged in directory order, later
// top-level keys overwrite earlier ones.
type FSAdapter struct {
	parser Parser
	fsys   fs.FS
	dir    string
}

func NewFSAdapter(parser Parser, fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{parser: parser, fsys: fsys, dir: dir}
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	all := make(map[string]map[string]any)
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !a.parser.SupportsFileExtension(path.Ext(entry.Name())) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFailedToReadFile, name, err)
		}

		catalogs, err := a.parser.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for lang, keys := range catalogs {
			if all[lang] == nil {
				all[lang] = make(map[string]any, len(keys))
			}
			for k, v := range keys {
				all[lang][k] = v
			}
		}
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTranslationFiles, a.dir)
	}
	return all, nil
}
