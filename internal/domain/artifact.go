package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ArtifactKind tags what sort of file an artifact refers to
type ArtifactKind int

const (
	ArtifactUnknown ArtifactKind = iota
	ArtifactLog
	ArtifactData
	ArtifactPDF
	ArtifactImage
	ArtifactVideo
)

var artifactKindNames = map[ArtifactKind]string{
	ArtifactUnknown: "unknown",
	ArtifactLog:     "log",
	ArtifactData:    "data",
	ArtifactPDF:     "pdf",
	ArtifactImage:   "image",
	ArtifactVideo:   "video",
}

// String returns the lowercase kind name
func (k ArtifactKind) String() string {
	if name, ok := artifactKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ArtifactKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler
func (k ArtifactKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Unrecognised names decode as ArtifactUnknown.
func (k *ArtifactKind) UnmarshalText(text []byte) error {
	*k = ArtifactUnknown
	for kind, name := range artifactKindNames {
		if name == string(text) {
			*k = kind
			break
		}
	}
	return nil
}

// KindFromPath guesses the artifact kind from a file extension
func KindFromPath(path string) ArtifactKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".log", ".txt", ".out":
		return ArtifactLog
	case ".json", ".yaml", ".yml", ".csv", ".xml", ".bin", ".dat":
		return ArtifactData
	case ".pdf":
		return ArtifactPDF
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".svg", ".webp":
		return ArtifactImage
	case ".mp4", ".mkv", ".webm", ".avi", ".mov":
		return ArtifactVideo
	}
	return ArtifactUnknown
}

// Artifact references a file produced or obtained during a test.
// The file does not have to exist yet.
type Artifact struct {
	Path        string       `json:"path" yaml:"path"`
	Kind        ArtifactKind `json:"kind" yaml:"kind"`
	Label       string       `json:"label" yaml:"label"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewArtifact creates an artifact of unknown kind with no description
func NewArtifact(path, label string) Artifact {
	return Artifact{
		Path:  path,
		Kind:  ArtifactUnknown,
		Label: label,
	}
}

// WithKind returns a copy of the artifact with the given kind
func (a Artifact) WithKind(kind ArtifactKind) Artifact {
	a.Kind = kind
	return a
}

// WithDescription returns a copy of the artifact with the given description
func (a Artifact) WithDescription(description string) Artifact {
	a.Description = description
	return a
}
