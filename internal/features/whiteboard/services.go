package whiteboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ScanService struct {
	db       *gorm.DB
	analyzer *Analyzer
	uploader *Uploader
	timeout  time.Duration
}

func NewScanService(db *gorm.DB, analyzer *Analyzer, uploader *Uploader, timeout time.Duration) *ScanService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ScanService{db: db, analyzer: analyzer, uploader: uploader, timeout: timeout}
}

// Scan uploads the photo, runs the Gemini reading and stores the result.
// A failed analysis still stores the scan so the photo is not lost.
func (s *ScanService) Scan(ctx context.Context, boxID uuid.UUID, uid, imageFormat string, imageData []byte) (*Scan, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	imageURL := ""
	if s.uploader != nil {
		url, err := s.uploader.Upload(ctx, fmt.Sprintf("whiteboard-%s.%s", uuid.New(), imageFormat), imageData)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	scan := Scan{
		ID:       uuid.New(),
		BoxID:    boxID,
		UserID:   uid,
		ImageURL: imageURL,
		Status:   ScanStatusDone,
	}

	result, err := s.analyzer.Analyze(ctx, imageFormat, imageData)
	if err != nil {
		scan.Status = ScanStatusFailed
	} else {
		scan.Result = datatypes.NewJSONType(*result)
	}

	if dbErr := s.db.Create(&scan).Error; dbErr != nil {
		return nil, fmt.Errorf("failed to store scan: %w", dbErr)
	}
	if err != nil {
		return &scan, fmt.Errorf("analysis failed: %w", err)
	}
	return &scan, nil
}

func (s *ScanService) Get(boxID, scanID uuid.UUID) (*Scan, error) {
	var scan Scan
	if err := s.db.First(&scan, "id = ? AND box_id = ?", scanID, boxID).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

// ListForUser returns the member's scans, newest first.
func (s *ScanService) ListForUser(boxID uuid.UUID, uid string) ([]Scan, error) {
	var scans []Scan
	err := s.db.
		Where("box_id = ? AND user_id = ?", boxID, uid).
		Order("created_at desc").
		Limit(50).
		Find(&scans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	return scans, nil
}
