package service

import (
	"time"

	"github.com/ignatzorin/screening-backend/internal/ml"
	"github.com/ignatzorin/screening-backend/internal/modelstore"
)

// ModelInfo описание активной модели для GET /model.
type ModelInfo struct {
	Loaded    bool             `json:"loaded"`
	Version   string           `json:"version,omitempty"`
	Schema    string           `json:"schema,omitempty"`
	Fields    []string         `json:"fields,omitempty"`
	TrainedAt *time.Time       `json:"trained_at,omitempty"`
	LoadedAt  *time.Time       `json:"loaded_at,omitempty"`
	Samples   int              `json:"samples,omitempty"`
	Positives int              `json:"positives,omitempty"`
	Trees     int              `json:"trees,omitempty"`
	Checksum  string           `json:"checksum,omitempty"`
	SizeBytes int              `json:"size_bytes,omitempty"`
	Params    *ml.ForestParams `json:"params,omitempty"`
}

// DescribeModel описание снимка; nil означает, что модель не загружена.
func DescribeModel(snap *modelstore.Snapshot) ModelInfo {
	if snap == nil {
		return ModelInfo{}
	}
	p := snap.Pipeline
	meta := p.Metadata
	return ModelInfo{
		Loaded:    true,
		Version:   snap.Version,
		Schema:    p.Schema.Name,
		Fields:    p.Schema.Names(),
		TrainedAt: &meta.TrainedAt,
		LoadedAt:  &snap.LoadedAt,
		Samples:   meta.Samples,
		Positives: meta.Positives,
		Trees:     len(p.Forest.Trees),
		Checksum:  snap.Checksum,
		SizeBytes: snap.Size,
		Params:    &meta.Params,
	}
}
