package storage

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

var _ Storage = (*File)(nil)

const (
	fileMode   = 0o600
	dirMode    = 0o700
	saltLength = 16
	nonceSize  = 24
)

// ErrSealed is returned when a sealed value cannot be opened with the configured passphrase
var ErrSealed = errors.New("stored value cannot be opened with this passphrase")

type fileContents struct {
	Salt   string            `json:"salt,omitempty"`
	Values map[string]string `json:"values"`
}

// File persists values as a JSON document. With a passphrase every value is sealed with
// NaCl secretbox under an argon2id derived key; the salt lives in the same document.
type File struct {
	path       string
	passphrase string
	lock       sync.Mutex

	derivedSalt string
	derivedKey  *[32]byte
}

type FileOption func(*File)

func WithPassphrase(passphrase string) FileOption {
	return func(f *File) {
		f.passphrase = passphrase
	}
}

func NewFile(path string, options ...FileOption) (*File, error) {
	if path == "" {
		return nil, errors.New("[storage.NewFile] path is required")
	}
	f := &File{path: path}
	for _, opt := range options {
		opt(f)
	}
	return f, nil
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	contents, err := f.read()
	if err != nil {
		return "", false, err
	}
	raw, ok := contents.Values[key]
	if !ok {
		return "", false, nil
	}
	value, err := f.open(contents, raw)
	if err != nil {
		return "", false, errors.Wrapf(err, "[File.Get] %s", key)
	}
	return value, true, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	contents, err := f.read()
	if err != nil {
		return err
	}
	sealed, err := f.seal(contents, value)
	if err != nil {
		return errors.Wrapf(err, "[File.Set] %s", key)
	}
	contents.Values[key] = sealed
	return f.write(contents)
}

func (f *File) Remove(_ context.Context, keys ...string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	contents, err := f.read()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(contents.Values, k)
	}
	return f.write(contents)
}

func (f *File) read() (*fileContents, error) {
	contents := &fileContents{Values: make(map[string]string)}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return contents, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[File.read] ReadFile")
	}
	if len(data) == 0 {
		return contents, nil
	}
	if err := json.Unmarshal(data, contents); err != nil {
		return nil, errors.Wrap(err, "[File.read] Unmarshal")
	}
	if contents.Values == nil {
		contents.Values = make(map[string]string)
	}
	return contents, nil
}

// write replaces the file atomically so a crash never leaves half a session behind
func (f *File) write(contents *fileContents) error {
	if err := os.MkdirAll(filepath.Dir(f.path), dirMode); err != nil {
		return errors.Wrap(err, "[File.write] MkdirAll")
	}
	data, err := json.MarshalIndent(contents, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[File.write] Marshal")
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "[File.write] CreateTemp")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[File.write] Write")
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[File.write] Chmod")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[File.write] Close")
	}
	return errors.Wrap(os.Rename(tmp.Name(), f.path), "[File.write] Rename")
}

func (f *File) key(contents *fileContents) (*[32]byte, error) {
	if contents.Salt == "" {
		salt := make([]byte, saltLength)
		if _, err := rand.Read(salt); err != nil {
			return nil, errors.Wrap(err, "rand.Read")
		}
		contents.Salt = base64.StdEncoding.EncodeToString(salt)
	}
	if f.derivedKey != nil && f.derivedSalt == contents.Salt {
		return f.derivedKey, nil
	}
	salt, err := base64.StdEncoding.DecodeString(contents.Salt)
	if err != nil {
		return nil, errors.Wrap(err, "decode salt")
	}
	var key [32]byte
	copy(key[:], argon2.IDKey([]byte(f.passphrase), salt, 1, 64*1024, 4, 32))
	f.derivedSalt, f.derivedKey = contents.Salt, &key
	return &key, nil
}

func (f *File) seal(contents *fileContents, value string) (string, error) {
	if f.passphrase == "" {
		return value, nil
	}
	key, err := f.key(contents)
	if err != nil {
		return "", err
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", errors.Wrap(err, "rand.Read")
	}
	box := secretbox.Seal(nonce[:], []byte(value), &nonce, key)
	return base64.StdEncoding.EncodeToString(box), nil
}

func (f *File) open(contents *fileContents, raw string) (string, error) {
	if f.passphrase == "" {
		return raw, nil
	}
	if contents.Salt == "" {
		return "", ErrSealed
	}
	box, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(box) < nonceSize {
		return "", ErrSealed
	}
	key, err := f.key(contents)
	if err != nil {
		return "", err
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	opened, ok := secretbox.Open(nil, box[nonceSize:], &nonce, key)
	if !ok {
		return "", ErrSealed
	}
	return string(opened), nil
}
