package file

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"
)

// FileOperations defines methods for reading from and writing to files.
type FileOperations interface {
	IsFileExists(filePath string) (bool, error)
	ReadJsonFile(filePath string, v any) error
	ReadYamlFile(filePath string, v any) error
	WriteFile(filePath string, data string) error
}

// FileService implements the FileOperations interface using standard file operations.
type FileService struct{}

// NewFileService creates a new instance of FileService.
func NewFileService() *FileService {
	return &FileService{}
}

// IsFileExists checks if the file exists and returns boolean and error
func (fs *FileService) IsFileExists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false, nil
	}

	// checking err == nil because of permission related error
	return err == nil, err
}

// ReadJsonFile reads and unmarshals JSON data from the given file.
func (fs *FileService) ReadJsonFile(filePath string, v any) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	return decoder.Decode(v)
}

// ReadYamlFile reads and unmarshals YAML data from the given file.
func (fs *FileService) ReadYamlFile(filePath string, v any) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	return decoder.Decode(v)
}

// WriteFile writes the data string to the file at filePath, creating or
// truncating it.
func (fs *FileService) WriteFile(filePath string, data string) error {
	return os.WriteFile(filePath, []byte(data), 0600)
}
