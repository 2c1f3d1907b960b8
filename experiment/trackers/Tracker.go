// Package trackers implements Trackers, which track and save data
// from the episodes of an experiment
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/multimountains/timestep"
)

// Tracker tracks data from each TimeStep of an experiment and saves
// it to disk
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error

	// Data returns one value per finished episode
	Data() []float64
}

// save encodes data with gob and writes it to filename
func save(filename string, data []float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not open save file: %w", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(data); err != nil {
		return fmt.Errorf("could not encode data: %w", err)
	}
	return file.Close()
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open data file: %w", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data []float64
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode data: %w", err)
	}
	return data, nil
}
