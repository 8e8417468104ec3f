package kubecreds

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"go.jetpack.io/kubecert/goutil"
)

const (
	DefaultUser     = "admin"
	DefaultCertFile = "k8s.crt"
	DefaultKeyFile  = "k8s.key"
)

// Output files hold private key material, so they are only readable by the
// owner.
const outputFileMode = 0600

type Options struct {
	// User is the name of the kubeconfig user entry to extract.
	User string
	// CertFile and KeyFile are the names of the files written to OutputDir.
	CertFile  string
	KeyFile   string
	OutputDir string
}

func (o Options) withDefaults() Options {
	return Options{
		User:      goutil.Coalesce(o.User, DefaultUser),
		CertFile:  goutil.Coalesce(o.CertFile, DefaultCertFile),
		KeyFile:   goutil.Coalesce(o.KeyFile, DefaultKeyFile),
		OutputDir: goutil.Coalesce(o.OutputDir, "."),
	}
}

type Result struct {
	CertPath string
	KeyPath  string
	// Skipped is set when the kubeconfig was empty and nothing was written.
	Skipped bool
}

// Extractor writes the client certificate and key of a kubeconfig user to
// plaintext files.
type Extractor struct {
	fs   afero.Fs
	opts Options
}

func New(opts Options) *Extractor {
	return NewWithFs(afero.NewOsFs(), opts)
}

func NewWithFs(fs afero.Fs, opts Options) *Extractor {
	return &Extractor{
		fs:   fs,
		opts: opts.withDefaults(),
	}
}

func (e *Extractor) Options() Options {
	return e.opts
}

// Load reads and parses the kubeconfig at path.
func (e *Extractor) Load(path string) (*Document, error) {
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read kubeconfig at %s", path)
	}
	logrus.Debugf("read %d bytes from %s", len(data), path)
	return Parse(data)
}

// FindUser returns the first entry in the users list named name. The second
// return value is false if there is no such entry.
func FindUser(doc *Document, name string) (*UserEntry, bool, error) {
	if doc == nil || !doc.hasUsers {
		return nil, false, missingField("users")
	}
	for i := range doc.Users {
		if doc.Users[i].Name == name {
			return &doc.Users[i], true, nil
		}
	}
	return nil, false, nil
}

// ExtractField returns the raw (still encoded) value of key in the user
// mapping of entry.
func ExtractField(entry *UserEntry, key string) (string, error) {
	if entry == nil || entry.User == nil {
		return "", missingField("user")
	}
	value, ok := entry.User.Field(key)
	if !ok {
		return "", missingField("user %q has no %s", entry.Name, key)
	}
	return value, nil
}

// DecodeBase64 decodes standard, padded base64 and requires the result to be
// ASCII text.
func DecodeBase64(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", errors.Wrapf(ErrDecode, "%v", err)
	}
	for i, b := range raw {
		if b > unicode.MaxASCII {
			return "", errors.Wrapf(ErrDecode, "non-ASCII byte 0x%x at offset %d", b, i)
		}
	}
	return string(raw), nil
}

// Run extracts the configured user's certificate and key from the kubeconfig
// at path. Nothing is written unless both values decode. An empty kubeconfig
// is not an error: Run returns a skipped result.
func (e *Extractor) Run(ctx context.Context, path string) (*Result, error) {
	doc, err := e.Load(path)
	if errors.Is(err, ErrEmptyDocument) {
		logrus.Debugf("%s is empty, nothing to extract", path)
		return &Result{Skipped: true}, nil
	} else if err != nil {
		return nil, err
	}

	entry, found, err := FindUser(doc, e.opts.User)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, missingField("no user named %q", e.opts.User)
	}

	cert, err := decodeField(entry, CertificateDataKey)
	if err != nil {
		return nil, err
	}
	key, err := decodeField(entry, KeyDataKey)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	result := &Result{
		CertPath: filepath.Join(e.opts.OutputDir, e.opts.CertFile),
		KeyPath:  filepath.Join(e.opts.OutputDir, e.opts.KeyFile),
	}
	if err := e.fs.MkdirAll(e.opts.OutputDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", e.opts.OutputDir)
	}
	if err := e.write(result.CertPath, cert); err != nil {
		return nil, err
	}
	if err := e.write(result.KeyPath, key); err != nil {
		return nil, err
	}
	return result, nil
}

func decodeField(entry *UserEntry, key string) (string, error) {
	encoded, err := ExtractField(entry, key)
	if err != nil {
		return "", err
	}
	decoded, err := DecodeBase64(encoded)
	if err != nil {
		return "", errors.Wrapf(err, "user %q %s", entry.Name, key)
	}
	return decoded, nil
}

func (e *Extractor) write(path, contents string) error {
	logrus.Debugf("writing %d bytes to %s", len(contents), path)
	err := afero.WriteFile(e.fs, path, []byte(contents), outputFileMode)
	return errors.Wrapf(err, "failed to write %s", path)
}
