package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"sda-backend/internal/config"
	"sda-backend/internal/timeutil"
)

// BackupInfo describes one stored snapshot object
type BackupInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// BackupService pushes snapshot exports to R2 object storage and restores
// from them. Disabled (all methods error) when no credentials are
// configured.
type BackupService struct {
	cfg      *config.Config
	Snapshot *SnapshotService
}

func NewBackupService(cfg *config.Config, snapshot *SnapshotService) *BackupService {
	return &BackupService{cfg: cfg, Snapshot: snapshot}
}

// Enabled reports whether R2 credentials are configured
func (s *BackupService) Enabled() bool {
	b := s.cfg.Backup
	return b.Endpoint != "" && b.AccessKey != "" && b.SecretKey != "" && b.Bucket != ""
}

func (s *BackupService) client(ctx context.Context) (*s3.Client, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("cloud backup is not configured")
	}
	b := s.cfg.Backup
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			b.AccessKey,
			b.SecretKey,
			"",
		)),
		awsconfig.WithRegion(b.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure R2 client: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(b.Endpoint)
	}), nil
}

// Upload exports the current snapshot and stores it under a timestamped key
func (s *BackupService) Upload(ctx context.Context) (*BackupInfo, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := s.Snapshot.ExportJSON(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("snapshots/%s.json", timeutil.Now().Format("2006-01-02_150405"))
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Backup.Bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(string(payload)),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("backup upload failed: %w", err)
	}

	log.Printf("[Backup] Uploaded snapshot %s (%d bytes)", key, len(payload))
	return &BackupInfo{Key: key, Size: int64(len(payload)), LastModified: timeutil.Now()}, nil
}

// List returns the stored snapshots, newest first
func (s *BackupService) List(ctx context.Context) ([]BackupInfo, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Backup.Bucket),
		Prefix: aws.String("snapshots/"),
	})
	if err != nil {
		return nil, fmt.Errorf("backup list failed: %w", err)
	}

	backups := make([]BackupInfo, 0, len(result.Contents))
	for _, obj := range result.Contents {
		info := BackupInfo{Key: aws.ToString(obj.Key)}
		if obj.Size != nil {
			info.Size = *obj.Size
		}
		if obj.LastModified != nil {
			info.LastModified = *obj.LastModified
		}
		backups = append(backups, info)
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].LastModified.After(backups[j].LastModified)
	})
	return backups, nil
}

// Restore downloads a stored snapshot and imports it. The import is
// all-or-nothing like any snapshot import.
func (s *BackupService) Restore(ctx context.Context, key string) error {
	client, err := s.client(ctx)
	if err != nil {
		return err
	}

	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Backup.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("backup download failed: %w", err)
	}
	defer result.Body.Close()

	payload, err := io.ReadAll(result.Body)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	if _, err := s.Snapshot.Import(ctx, payload); err != nil {
		return err
	}
	log.Printf("[Backup] Restored snapshot %s", key)
	return nil
}
