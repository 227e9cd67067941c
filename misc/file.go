package misc

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// LoadJSON reads the named settings file and unmarshals it into v.
func LoadJSON(fileName string, v interface{}) error {
	if fileName == "" {
		return errors.New("no filename supplied")
	}
	contents, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("unable to read %s - %s", fileName, err)
	}
	if err := json.Unmarshal(contents, v); err != nil {
		return fmt.Errorf("unable to parse %s - %s", fileName, err)
	}
	return nil
}

// SaveJSON writes v to the named file as JSON, creating or truncating it.
// Used to back up the settings of a run next to its output frames.
func SaveJSON(fileName string, v interface{}) error {
	if fileName == "" {
		return errors.New("no filename supplied")
	}
	contents, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("unable to encode settings - %s", err)
	}
	if err := os.WriteFile(fileName, contents, 0o644); err != nil {
		return fmt.Errorf("unable to write file %s - %s", fileName, err)
	}
	return nil
}
