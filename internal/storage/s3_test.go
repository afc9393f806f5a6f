package storage

import (
	"context"
	"os"
	"testing"

	"github.com/mfenderov/docscan/pkg/models"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty endpoint",
			config:  Config{Endpoint: "", Bucket: "test"},
			wantErr: true,
		},
		{
			name:    "empty bucket",
			config:  Config{Endpoint: "localhost:9000", Bucket: ""},
			wantErr: true,
		},
		{
			name: "valid config",
			config: Config{
				Endpoint:        "localhost:9000",
				Bucket:          "test",
				AccessKeyID:     "minioadmin",
				SecretAccessKey: "minioadmin",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		name     string
		owner    string
		id       int64
		fileName string
		want     string
	}{
		{"simple", "ann@example.com", 7, "essay.txt", "uploads/ann@example.com/7-essay.txt"},
		{"slash in name", "ann@example.com", 8, "../secret.txt", "uploads/ann@example.com/8-.._secret.txt"},
		{"traversal owner", "..", 9, "a.txt", "uploads/_/9-a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObjectName(tt.owner, tt.id, tt.fileName); got != tt.want {
				t.Errorf("ObjectName() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestIntegration_UploadArchive tests actual S3 operations against MinIO.
// Skip if MinIO is not running.
func TestIntegration_UploadArchive(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}

	client, err := New(Config{
		Endpoint:        endpoint,
		Bucket:          "docscan-test",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		UseSSL:          false,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()

	// Try to ensure bucket - skip if MinIO is not available
	if err := client.EnsureBucket(ctx); err != nil {
		t.Skipf("MinIO not available, skipping integration test: %v", err)
	}

	doc := models.Document{ID: 42, Owner: "test@example.com", FileName: "essay.txt", Content: "The quick brown fox."}

	t.Run("PutUpload", func(t *testing.T) {
		name, err := client.PutUpload(ctx, doc)
		if err != nil {
			t.Fatalf("PutUpload() error = %v", err)
		}
		if name != "uploads/test@example.com/42-essay.txt" {
			t.Errorf("PutUpload() = %q", name)
		}
	})

	t.Run("GetUpload", func(t *testing.T) {
		content, err := client.GetUpload(ctx, doc.Owner, doc.ID, doc.FileName)
		if err != nil {
			t.Fatalf("GetUpload() error = %v", err)
		}
		if content != doc.Content {
			t.Errorf("GetUpload() = %q, want %q", content, doc.Content)
		}
	})

	t.Run("ListUploads", func(t *testing.T) {
		names, err := client.ListUploads(ctx, doc.Owner)
		if err != nil {
			t.Fatalf("ListUploads() error = %v", err)
		}
		found := false
		for _, n := range names {
			if n == "uploads/test@example.com/42-essay.txt" {
				found = true
			}
		}
		if !found {
			t.Errorf("ListUploads() = %v, missing archived upload", names)
		}
	})
}
