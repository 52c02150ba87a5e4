// Copyright 2025 cons0leweb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package checksum

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/pkg/walker"
)

// 🔢 Algorithm identifies a supported digest algorithm
type Algorithm int

const (
	MD5 Algorithm = iota
	SHA1
	SHA256
	SHA512
)

// String returns the lowercase algorithm name.
func (a Algorithm) String() string {
	switch a {
	case MD5:
		return "md5"
	case SHA1:
		return "sha1"
	case SHA256:
		return "sha256"
	case SHA512:
		return "sha512"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a name like "sha256" to its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "md5":
		return MD5, nil
	case "sha1":
		return SHA1, nil
	case "sha256":
		return SHA256, nil
	case "sha512":
		return SHA512, nil
	default:
		return 0, errors.Errorf("unsupported checksum algorithm: %q", name)
	}
}

func (a Algorithm) newHash() hash.Hash {
	switch a {
	case MD5:
		return md5.New()
	case SHA1:
		return sha1.New()
	case SHA512:
		return sha512.New()
	default:
		return sha256.New()
	}
}

// 📄 Entry is the digest result for a single file
type Entry struct {
	Path      string
	Algorithm Algorithm
	Digest    string
	Err       error // Per-file failure; the batch continues
}

// 🔐 File computes the hex digest of a file's content with the given
// algorithm, streaming so large files are not held in memory.
func File(ctx context.Context, path string, algo Algorithm) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Errorf("opening file for checksum: %w", err)
	}
	defer f.Close()

	h := algo.newHash()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Errorf("hashing %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// 📊 Report walks root with the filter and computes a digest per candidate.
// Per-file failures are recorded on the entry and logged; they never abort
// the batch.
func Report(ctx context.Context, root string, algo Algorithm, filter walker.Filter) ([]Entry, error) {
	logger := zerolog.Ctx(ctx)

	candidates, err := walker.Walk(ctx, root, filter)
	if err != nil {
		return nil, errors.Errorf("listing files: %w", err)
	}

	entries := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		entry := Entry{Path: c.Path, Algorithm: algo}
		entry.Digest, entry.Err = File(ctx, c.Path, algo)
		if entry.Err != nil {
			logger.Warn().Err(entry.Err).Str("path", c.Path).Msg("checksum failed")
		}
		entries = append(entries, entry)
	}

	logger.Debug().Int("count", len(entries)).Str("algorithm", algo.String()).Msg("checksum report complete")
	return entries, nil
}

// 👯 Duplicates groups entries sharing an identical digest. Only groups with
// two or more members are returned, ordered by first appearance of the
// digest, with paths sorted inside each group. Entries carrying an error are
// excluded.
func Duplicates(entries []Entry) [][]Entry {
	byDigest := make(map[string][]Entry)
	var order []string

	for _, e := range entries {
		if e.Err != nil || e.Digest == "" {
			continue
		}
		if _, seen := byDigest[e.Digest]; !seen {
			order = append(order, e.Digest)
		}
		byDigest[e.Digest] = append(byDigest[e.Digest], e)
	}

	var groups [][]Entry
	for _, digest := range order {
		group := byDigest[digest]
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Path < group[j].Path })
		groups = append(groups, group)
	}

	return groups
}
