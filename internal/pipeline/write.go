// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/renameio/v2"

	xglog "github.com/ManuGH/m3uplus/internal/log"
	"github.com/ManuGH/m3uplus/internal/m3u"
)

// WriteFileAtomic replaces path with the output of write. The file is
// fsynced and renamed into place, so readers see either the old or the new
// content, never a partial file.
func WriteFileAtomic(ctx context.Context, path string, write func(io.Writer) error) error {
	logger := xglog.WithComponentFromContext(ctx, "pipeline")

	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending file %s: %w", path, err)
	}
	defer func() {
		// no-op once the file has been committed
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Str(xglog.FieldOutputPath, path).Msg("cleanup pending file")
		}
	}()

	if err := write(pendingFile); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	logger.Debug().Str(xglog.FieldOutputPath, path).Msg("output written")
	return nil
}

// WriteExport writes the canonical text of p to path.
func WriteExport(ctx context.Context, path string, p *m3u.Playlist, opts m3u.ExportOptions) error {
	return WriteFileAtomic(ctx, path, func(w io.Writer) error {
		return m3u.Write(w, p, opts)
	})
}

// WriteJSONFile writes v as indented JSON to path.
func WriteJSONFile(ctx context.Context, path string, v any) error {
	return WriteFileAtomic(ctx, path, func(w io.Writer) error {
		return EncodeJSON(w, v)
	})
}

// EncodeJSON writes v as indented JSON followed by a newline.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
