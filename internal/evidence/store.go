package evidence

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// unsafeChars - все, что не разрешено в имени файла улики
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// DiskStore сохраняет изображения-улики в локальный каталог.
// Имя файла: <зона>_<YYYYMMDD>_<HHMMSS>.jpg. Коллизии в пределах одной
// секунды для одной зоны не разрешаются - последняя запись побеждает.
type DiskStore struct {
	dir string
	now func() time.Time
}

// NewDiskStore создает каталог для улик, если его еще нет
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create evidence dir %s: %w", dir, err)
	}
	return &DiskStore{
		dir: dir,
		now: time.Now,
	}, nil
}

// Save записывает изображение на диск и возвращает путь к файлу
func (s *DiskStore) Save(_ context.Context, locationID string, image io.Reader) (string, error) {
	filename := fmt.Sprintf("%s_%s.jpg", sanitizeLocation(locationID), s.now().Format("20060102_150405"))
	path := filepath.Join(s.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create evidence file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, image); err != nil {
		return "", fmt.Errorf("failed to write evidence file: %w", err)
	}
	return path, nil
}

// sanitizeLocation приводит метку зоны к безопасному фрагменту имени файла
func sanitizeLocation(locationID string) string {
	s := unsafeChars.ReplaceAllString(locationID, "_")
	// Убираем ведущие точки, чтобы имя не начиналось со скрытого файла
	s = strings.Trim(s, "._")
	if s == "" {
		s = "unnamed"
	}
	return s
}
