package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// takes a save path and a variable number of strings and writes them to file separated by new lines
func WriteToFile(savePath string, content ...string) error {
	singleString := ""
	for i, c := range content {
		if i == 0 {
			singleString = c
			continue
		}
		singleString = fmt.Sprintf("%s\n%s", singleString, c)
	}

	if err := ensureDir(savePath); err != nil {
		return err
	}
	return os.WriteFile(savePath, []byte(singleString), 0644)
}

func AppendToFile(savePath string, content ...string) error {
	if err := ensureDir(savePath); err != nil {
		return err
	}
	f, err := os.OpenFile(savePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return err
	}

	defer f.Close()

	for _, s := range content {
		if _, err = f.WriteString(s + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// SaveJson marshals data into the file at path, creating the parent folder if needed
func SaveJson(path string, data interface{}) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	bs, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = file.Write(bs)
	return err
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
