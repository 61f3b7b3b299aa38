package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// 画像アップロードの制限
const maxImageSize = 5 << 20 // 5MiB

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var (
	ErrImageTooLarge   = errors.New("image too large")
	ErrUnsupportedType = errors.New("unsupported image type")
)

// ローカルディスクに保存して公開URLを返す画像ストア。
type LocalImageStore struct {
	dir       string
	publicURL string
}

func NewLocalImageStore(dir string, publicBaseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: mkdir %s: %w", dir, err)
	}
	return &LocalImageStore{
		dir:       dir,
		publicURL: strings.TrimRight(publicBaseURL, "/") + "/uploads/",
	}, nil
}

// Save は内容をスニッフィングして許可タイプだけ保存する。
// 拡張子はクライアントの申告ではなく内容から決める。
func (s *LocalImageStore) Save(r io.Reader, size int64) (string, error) {
	if size > maxImageSize {
		return "", ErrImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, maxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("storage: read upload: %w", err)
	}
	if int64(len(data)) > maxImageSize {
		return "", ErrImageTooLarge
	}

	mt := mimetype.Detect(data)
	ext, ok := allowedTypes[mt.String()]
	if !ok {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", path, err)
	}

	return s.publicURL + name, nil
}

// 静的配信用のディレクトリ
func (s *LocalImageStore) Dir() string {
	return s.dir
}
