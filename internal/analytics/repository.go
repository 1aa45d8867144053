package analytics

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates the gorm-backed analytics store
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ChannelSummary(ctx context.Context, channelID uuid.UUID) (*ChannelSummary, error) {
	summary := &ChannelSummary{ChannelID: channelID}

	row := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*),
		       COALESCE(SUM(views), 0),
		       COALESCE(SUM(likes), 0),
		       COALESCE(SUM(dislikes), 0)
		FROM videos
		WHERE uploader_id = ?`, channelID).Row()
	if err := row.Scan(&summary.TotalVideos, &summary.TotalViews,
		&summary.TotalLikes, &summary.TotalDislikes); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM comments
		WHERE video_id IN (SELECT id FROM videos WHERE uploader_id = ?)`, channelID).
		Scan(&summary.TotalComments).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM subscriptions WHERE channel_id = ?`, channelID).
		Scan(&summary.Subscribers).Error; err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *gormRepository) VideoBreakdown(ctx context.Context, channelID uuid.UUID) ([]VideoStats, error) {
	var stats []VideoStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT v.id AS video_id,
		       v.title,
		       v.views,
		       v.likes,
		       v.dislikes,
		       v.created_at AS uploaded_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.video_id = v.id) AS comments
		FROM videos v
		WHERE v.uploader_id = ?
		ORDER BY v.created_at DESC`, channelID).
		Scan(&stats).Error
	return stats, err
}

func (r *gormRepository) SiteStats(ctx context.Context) (*SiteStats, error) {
	stats := &SiteStats{}

	queries := []struct {
		sql  string
		dest *int64
	}{
		{`SELECT COUNT(*) FROM users`, &stats.TotalUsers},
		{`SELECT COUNT(*) FROM videos`, &stats.TotalVideos},
		{`SELECT COALESCE(SUM(views), 0) FROM videos`, &stats.TotalViews},
		{`SELECT COUNT(*) FROM comments`, &stats.TotalComments},
		{`SELECT COUNT(*) FROM videos WHERE hidden = true`, &stats.HiddenVideos},
	}
	for _, q := range queries {
		if err := r.db.WithContext(ctx).Raw(q.sql).Scan(q.dest).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}
