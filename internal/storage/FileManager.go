package storage

import (
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"carhoot/internal/storage/interfaces"
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"path/filepath"
)

type FileManager struct {
	store      interfaces.SnapshotterInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, store *DurableStore, logger providers.Logger) *FileManager {
	return newFileManager(compressor, store, logger)
}

func newFileManager(compressor interfaces.CompressorInterface, store interfaces.SnapshotterInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

// SaveToFile writes a compressed snapshot next to fileName and renames it into
// place, so a crash mid-write leaves the previous snapshot intact.
func (f *FileManager) SaveToFile(fileName string) (int, error) {
	snapshot := f.store.Snapshot()

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return 0, err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return 0, err
	}

	if err = os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return 0, err
	}
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return 0, err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return 0, err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return 0, err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return 0, err
	}

	return len(snapshot.Entries), os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the store. A missing file is a first start, not an error.
func (f *FileManager) LoadFromFile(fileName string) (int, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return 0, err
	}

	var snapshot models.KVSnapshot
	if err = json.Unmarshal(decompressedData, &snapshot); err != nil {
		return 0, fmt.Errorf("corrupted snapshot %s: %w", fileName, err)
	}
	if snapshot.Version < 1 || snapshot.Version > snapshotVersion {
		return 0, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}
	if snapshot.Entries == nil {
		f.logger.Warnf(providers.TypeStorage, "Snapshot %s has no entries", fileName)
		snapshot.Entries = make(map[string]models.KVEntry)
	}
	return f.store.Load(&snapshot), nil
}
