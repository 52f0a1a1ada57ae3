// Copyright (c) 2023-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package cache manages the on-disk credential and data cache.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

var (
	ErrEmpty   = errors.New("empty cache file")
	ErrExpired = errors.New("cache expired")
)

// makeCacheFilename converts filename.ext to filename-suffix.ext.
func makeCacheFilename(cacheDir, filename, suffix string) string {
	ne := filenameSplit(filename)
	return filepath.Join(cacheDir, filenameJoin(nameExt{ne[0] + "-" + suffix, ne[1]}))
}

// nameExt is a pair of filename and extension.
type nameExt [2]string

// filenameSplit splits the "path/to/filename.ext" into
// nameExt{"path/to/filename", ".ext"}.
func filenameSplit(filename string) nameExt {
	ext := filepath.Ext(filename)
	name := filename[:len(filename)-len(ext)]
	return nameExt{name, ext}
}

// filenameJoin combines nameExt{"path/to/filename", ".ext"} to
// "path/to/filename.ext".
func filenameJoin(split nameExt) string {
	return split[0] + split[1]
}

// checkCacheFile returns an error if the cache file does not exist, is
// empty, or is older than maxAge.
func checkCacheFile(filename string, maxAge time.Duration) error {
	if filename == "" {
		return errors.New("no cache filename")
	}
	fi, err := os.Stat(filename)
	if err != nil {
		return err
	}
	return validateCache(fi, maxAge)
}

func validateCache(fi os.FileInfo, maxAge time.Duration) error {
	if fi.IsDir() {
		return errors.New("cache file is a directory")
	}
	if fi.Size() == 0 {
		return ErrEmpty
	}
	if time.Since(fi.ModTime()) > maxAge {
		return ErrExpired
	}
	return nil
}

// save encodes tt as JSONL into the container file named after filename
// and suffix in the cache directory.
func save[T any](cacheDir, filename, suffix string, tt []T, co container) error {
	filename = makeCacheFilename(cacheDir, filename, suffix)
	f, err := co.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer f.Close()

	if err := writeSlice(f, tt); err != nil {
		return fmt.Errorf("file: %s, error: %w", filename, err)
	}
	return nil
}

func writeSlice[T any](w io.Writer, tt []T) error {
	enc := json.NewEncoder(w)
	for _, t := range tt {
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("failed to encode data: %w", err)
		}
	}
	return nil
}

// load reads the JSONL data from the container file in the cache
// directory, failing if the file is older than maxAge.
func load[T any](cacheDir, filename, suffix string, maxAge time.Duration, co container) ([]T, error) {
	filename = makeCacheFilename(cacheDir, filename, suffix)

	if err := checkCacheFile(filename, maxAge); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	f, err := co.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	tt, err := read[T](f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data from %s: %w", filename, err)
	}
	return tt, nil
}

// read reads the data from the reader r until it reaches the EOF and
// returns it as a slice of T.
func read[T any](r io.Reader) ([]T, error) {
	dec := json.NewDecoder(r)
	var tt []T
	for {
		var t T
		if err := dec.Decode(&t); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		tt = append(tt, t)
	}
	return tt, nil
}
