package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/matryer/try"
	"github.com/pkg/errors"
)

// readInput returns the bytes of a file, of a document at an http(s) URL, or
// of stdin when input is empty.
func readInput(ctx context.Context, input string) ([]byte, error) {
	if isURL(input) {
		return fetcher.GetBytes(ctx, input)
	}

	r, err := openInputFile(input)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %q", input)
	}
	return b, nil
}

func openInputFile(input string) (io.ReadCloser, error) {
	if input == "" {
		return io.NopCloser(os.Stdin), nil
	}

	var r *os.File
	err := try.Do(func(attempt int) (bool, error) {
		var ferr error
		r, ferr = os.Open(input)
		return attempt < 5, ferr
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open input file %q", input)
	}
	return r, nil
}

func openOutputFile(output string) (*os.File, error) {
	if output == "" {
		return os.Stdout, nil
	}

	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, errors.Wrapf(err, "creating directory %q", dir)
	}

	var w *os.File
	err := try.Do(func(attempt int) (bool, error) {
		var ferr error
		w, ferr = os.OpenFile(output, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0666)
		return attempt < 5, ferr
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open output file %q", output)
	}
	return w, nil
}

// IsDir returns true if the passed string looks like it specifies a directory, false otherwise.
func IsDir(dir string) bool {
	if 0 < len(dir) && dir[len(dir)-1] == os.PathSeparator {
		return true
	}
	info, err := os.Lstat(dir)
	return err == nil && info.Mode().IsDir() && info.Mode()&os.ModeSymlink == 0
}
