// Package tempfile はアップロード画像を一時ディレクトリへ保存・削除します。
package tempfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// fallbackName はサニタイズ後に何も残らなかった場合のファイル名です。
	fallbackName = "upload"
	// maxNameLength はサニタイズ後のファイル名の最大バイト数です。
	maxNameLength = 128
)

var (
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)
	underscores = regexp.MustCompile(`_+`)
)

// Sanitize はクライアント由来のファイル名を安全なベース名に変換します。
// パス区切り・制御文字・空白などは "_" に置換され、先頭のドットは除去されます。
func Sanitize(name string) string {
	// Windows形式の区切りも考慮してベース名のみを使う
	name = strings.ReplaceAll(name, `\`, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	name = unsafeChars.ReplaceAllString(name, "_")
	name = underscores.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, "._")
	name = strings.TrimRight(name, "_")

	if len(name) > maxNameLength {
		ext := filepath.Ext(name)
		if len(ext) >= maxNameLength {
			ext = ""
		}
		name = name[:maxNameLength-len(ext)] + ext
	}

	if name == "" || strings.Trim(name, ".") == "" {
		return fallbackName
	}
	return name
}

// Store はリクエストごとに一意な一時ファイルを作成します。
type Store struct {
	dir string
}

// NewStore はdirを作成し、Storeを返します。
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload dir is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir は保存先ディレクトリを返します。
func (s *Store) Dir() string {
	return s.dir
}

// Save はrの内容を "<uuid>_<Sanitize(name)>" として書き込み、そのパスを返します。
// 書き込みに失敗した場合、作成途中のファイルは削除されます。
func (s *Store) Save(name string, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, uuid.NewString()+"_"+Sanitize(name))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.Remove(path)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = s.Remove(path)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return path, nil
}

// Remove はpathを削除します。既に存在しない場合は何もしません。
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
