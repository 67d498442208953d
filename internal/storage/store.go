// Package storage persists simulation runs to disk: a JSON metadata
// file per run plus a CSV of per-cell snapshot records, following the
// run-id directory layout used for recorded experiments.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/meltlbm/internal/sim"
)

// Store roots a tree of run directories under baseDir.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes a completed run for listing and reloading.
type RunMetadata struct {
	ID             string             `json:"id"`
	Scenario       string             `json:"scenario"`
	Timestamp      time.Time          `json:"timestamp"`
	TotalSteps     int                `json:"total_steps"`
	OutputInterval int                `json:"output_interval"`
	Snapshots      int                `json:"snapshots"`
	Metrics        map[string]float64 `json:"metrics"`
}

// Run is an open recording session. It implements sim.Sink, so a
// driver can emit snapshots directly into it. Close must be called to
// flush the CSV and write metadata.json.
type Run struct {
	meta    RunMetadata
	dir     string
	csvFile *os.File
	w       *csv.Writer
}

var _ sim.Sink = (*Run)(nil)

// NewRun creates a run directory under the store and opens its CSV
// for writing.
func (s *Store) NewRun(scenario string, totalSteps, outputInterval int) (*Run, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "cells.csv"))
	if err != nil {
		return nil, err
	}

	r := &Run{
		meta: RunMetadata{
			ID:             runID,
			Scenario:       scenario,
			Timestamp:      time.Now(),
			TotalSteps:     totalSteps,
			OutputInterval: outputInterval,
		},
		dir:     runDir,
		csvFile: csvFile,
		w:       csv.NewWriter(csvFile),
	}

	header := []string{"step", "cell", "phase", "mass", "rho", "kappa", "ux", "uy", "uz", "temperature", "melted"}
	if err := r.w.Write(header); err != nil {
		csvFile.Close()
		return nil, err
	}
	return r, nil
}

// Emit implements sim.Sink, writing one CSV row per cell in the
// snapshot.
func (r *Run) Emit(snap sim.Snapshot) error {
	for i := range snap.Phase {
		u := snap.U[i]
		row := []string{
			strconv.Itoa(snap.Step),
			strconv.Itoa(i),
			snap.Phase[i].String(),
			strconv.FormatFloat(snap.Mass[i], 'f', 8, 64),
			strconv.FormatFloat(snap.Rho[i], 'f', 8, 64),
			strconv.FormatFloat(snap.Kappa[i], 'f', 8, 64),
			strconv.FormatFloat(u[0], 'f', 8, 64),
			strconv.FormatFloat(u[1], 'f', 8, 64),
			strconv.FormatFloat(u[2], 'f', 8, 64),
			strconv.FormatFloat(snap.T[i], 'f', 6, 64),
			strconv.FormatBool(snap.Melted[i]),
		}
		if err := r.w.Write(row); err != nil {
			return err
		}
	}
	r.meta.Snapshots++
	return nil
}

// Close flushes the CSV, records the given final metric values, and
// writes metadata.json.
func (r *Run) Close(metrics map[string]float64) error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		r.csvFile.Close()
		return err
	}
	if err := r.csvFile.Close(); err != nil {
		return err
	}

	r.meta.Metrics = metrics
	metaFile, err := os.Create(filepath.Join(r.dir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	return enc.Encode(r.meta)
}

// ID returns the run's identifier, valid once NewRun has returned.
func (r *Run) ID() string { return r.meta.ID }

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadCells reads back every row of a run's cells.csv, keyed by step.
func (s *Store) LoadCells(runID string) (map[int][]CellRecord, error) {
	csvPath := filepath.Join(s.baseDir, runID, "cells.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	out := make(map[int][]CellRecord)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 11 {
			continue
		}
		step, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		cell, _ := strconv.Atoi(rec[1])
		mass, _ := strconv.ParseFloat(rec[3], 64)
		rho, _ := strconv.ParseFloat(rec[4], 64)
		kappa, _ := strconv.ParseFloat(rec[5], 64)
		ux, _ := strconv.ParseFloat(rec[6], 64)
		uy, _ := strconv.ParseFloat(rec[7], 64)
		uz, _ := strconv.ParseFloat(rec[8], 64)
		temp, _ := strconv.ParseFloat(rec[9], 64)
		melted, _ := strconv.ParseBool(rec[10])

		out[step] = append(out[step], CellRecord{
			Cell: cell, Phase: rec[2], Mass: mass, Rho: rho, Kappa: kappa,
			Ux: ux, Uy: uy, Uz: uz, Temperature: temp, Melted: melted,
		})
	}
	return out, nil
}

// CellRecord is one decoded row of a run's cells.csv.
type CellRecord struct {
	Cell                int
	Phase               string
	Mass, Rho, Kappa    float64
	Ux, Uy, Uz          float64
	Temperature         float64
	Melted              bool
}
