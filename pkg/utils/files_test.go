package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetPathInfo(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}

	tests := []struct {
		rel  string
		want SourceFile
	}{
		{
			"hello.pas",
			SourceFile{Path: filepath.Join(wd, "hello.pas"), Dir: wd, Name: "hello"},
		},
		{
			"src/../lib/util.c",
			SourceFile{Path: filepath.Join(wd, "lib", "util.c"), Dir: filepath.Join(wd, "lib"), Name: "util"},
		},
		{
			"noext",
			SourceFile{Path: filepath.Join(wd, "noext"), Dir: wd, Name: "noext"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			got, err := GetPathInfo(tt.rel)
			if err != nil {
				t.Fatalf("GetPathInfo failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
