// Package artifact persists trained objects (the feature preprocessor and
// the model) as versioned JSON envelopes at fixed, configured paths.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/gofrs/uuid/v5"
	"github.com/klauspost/compress/gzip"

	"github.com/carson-networks/fraud-detection-server/internal/failure"
)

// FormatVersion is written into every envelope saved by this build.
const FormatVersion = "1.0.0"

var compatibleVersions = mustConstraint("^1.0.0")

type Kind string

const (
	KindPreprocessor Kind = "preprocessor"
	KindModel        Kind = "model"
)

// Header identifies a saved artifact.
type Header struct {
	ID            uuid.UUID `json:"id"`
	Kind          Kind      `json:"kind"`
	FormatVersion string    `json:"format_version"`
	CreatedAt     time.Time `json:"created_at"`
}

type envelope struct {
	Header
	Payload json.RawMessage `json:"payload"`
}

// Staged is an artifact written to a temporary file beside its final path.
// It becomes visible only once published.
type Staged struct {
	Header Header
	Size   int64

	path string
	tmp  string
}

// Path is the final location the artifact is published to.
func (s *Staged) Path() string {
	return s.path
}

// Discard removes the temporary file if it was never published.
func (s *Staged) Discard() {
	if s.tmp != "" {
		os.Remove(s.tmp)
		s.tmp = ""
	}
}

// Stage writes payload to a temporary file next to path. A ".gz" suffix
// gzips the file.
func Stage(path string, kind Kind, payload any) (*Staged, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("artifact: encode %s: %w", kind, err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	env := envelope{
		Header: Header{
			ID:            id,
			Kind:          kind,
			FormatVersion: FormatVersion,
			CreatedAt:     time.Now().UTC(),
		},
		Payload: body,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, err
	}
	staged := &Staged{Header: env.Header, path: path, tmp: tmp.Name()}

	if err := writeEnvelope(tmp, path, env); err != nil {
		tmp.Close()
		staged.Discard()
		return nil, fmt.Errorf("artifact: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		staged.Discard()
		return nil, err
	}
	info, err := os.Stat(staged.tmp)
	if err != nil {
		staged.Discard()
		return nil, err
	}
	staged.Size = info.Size()
	return staged, nil
}

// Publish renames every staged artifact onto its final path, in order.
// Readers that pair artifacts must check their binding, since a crash can
// still land between two renames.
func Publish(staged ...*Staged) error {
	for _, s := range staged {
		if s.tmp == "" {
			return fmt.Errorf("artifact: %s already published or discarded", s.path)
		}
	}
	for _, s := range staged {
		if err := os.Rename(s.tmp, s.path); err != nil {
			return err
		}
		s.tmp = ""
	}
	return nil
}

// Save writes payload atomically to path. It returns the header written
// and the size of the file on disk.
func Save(path string, kind Kind, payload any) (Header, int64, error) {
	staged, err := Stage(path, kind, payload)
	if err != nil {
		return Header{}, 0, err
	}
	defer staged.Discard()
	if err := Publish(staged); err != nil {
		return Header{}, 0, err
	}
	return staged.Header, staged.Size, nil
}

func writeEnvelope(w io.Writer, path string, env envelope) error {
	if !isGzip(path) {
		return json.NewEncoder(w).Encode(env)
	}
	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(env); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Load reads the artifact at path into payload. A missing file is an
// ArtifactMissing failure; anything unreadable, of the wrong kind or of an
// incompatible format version is ArtifactInvalid.
func Load(path string, kind Kind, payload any) (Header, error) {
	const op = "artifact.Load"

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Header{}, failure.New(failure.KindArtifactMissing, op,
			fmt.Errorf("%s artifact not found at %s", kind, path))
	}
	if err != nil {
		return Header{}, failure.New(failure.KindArtifactInvalid, op, err)
	}
	defer f.Close()

	var r io.Reader = f
	if isGzip(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return Header{}, failure.New(failure.KindArtifactInvalid, op, fmt.Errorf("%s: %w", path, err))
		}
		defer zr.Close()
		r = zr
	}

	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return Header{}, failure.New(failure.KindArtifactInvalid, op, fmt.Errorf("decode %s: %w", path, err))
	}
	if env.Kind != kind {
		return Header{}, failure.New(failure.KindArtifactInvalid, op,
			fmt.Errorf("%s holds a %q artifact, want %q", path, env.Kind, kind))
	}
	version, err := semver.NewVersion(env.FormatVersion)
	if err != nil || !compatibleVersions.Check(version) {
		return Header{}, failure.New(failure.KindArtifactInvalid, op,
			fmt.Errorf("%s has unsupported format version %q", path, env.FormatVersion))
	}
	if err := json.Unmarshal(env.Payload, payload); err != nil {
		return Header{}, failure.New(failure.KindArtifactInvalid, op, fmt.Errorf("decode %s payload: %w", kind, err))
	}
	return env.Header, nil
}

func isGzip(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}
