package analytics

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/SahilGarg15/TaskFlow/modules/cache"
	"github.com/SahilGarg15/TaskFlow/modules/task"
)

// trendWindow is how far back the completion trend reaches.
const trendWindow = 30 * 24 * time.Hour

// Service computes per-owner reports over the task module's aggregate
// queries, with a Redis cache-aside layer in front. A nil cache disables
// caching but never fails a request.
type Service struct {
	taskPort task.Port
	cache    *cache.Cache
}

// NewService creates a new analytics service.
func NewService(taskPort task.Port, c *cache.Cache) *Service {
	return &Service{taskPort: taskPort, cache: c}
}

func analyticsKey(userID string) string { return "analytics:" + userID }
func statsKey(userID string) string     { return "stats:" + userID }

// GetAnalytics returns the owner's report, serving from cache when possible.
func (s *Service) GetAnalytics(ctx context.Context, userID string) (*Report, error) {
	if s.cache != nil {
		var cached Report
		hit, err := s.cache.Get(ctx, analyticsKey(userID), &cached)
		if err != nil {
			log.Printf("[analytics] cache read failed: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	report, err := s.computeReport(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, analyticsKey(userID), report); err != nil {
			log.Printf("[analytics] cache write failed: %v", err)
		}
	}
	return report, nil
}

// GetStats returns the owner's status counts, serving from cache when
// possible.
func (s *Service) GetStats(ctx context.Context, userID string) (*Stats, error) {
	if s.cache != nil {
		var cached Stats
		hit, err := s.cache.Get(ctx, statsKey(userID), &cached)
		if err != nil {
			log.Printf("[analytics] cache read failed: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	counts, err := s.taskPort.StatusCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := &Stats{
		Total:      counts.Total,
		Pending:    counts.Pending,
		InProgress: counts.InProgress,
		Completed:  counts.Completed,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsKey(userID), stats); err != nil {
			log.Printf("[analytics] cache write failed: %v", err)
		}
	}
	return stats, nil
}

// Invalidate drops the owner's cached reports. Called when task events for
// that owner arrive.
func (s *Service) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, analyticsKey(userID)); err != nil {
		log.Printf("[analytics] cache invalidation failed: %v", err)
	}
	if err := s.cache.Delete(ctx, statsKey(userID)); err != nil {
		log.Printf("[analytics] cache invalidation failed: %v", err)
	}
}

// computeReport assembles the report. One now is captured up front so the
// overdue count and the trend window agree with each other.
func (s *Service) computeReport(ctx context.Context, userID string) (*Report, error) {
	now := time.Now()

	byPriority, err := s.taskPort.PriorityCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	trend, err := s.taskPort.CompletionSeries(ctx, userID, now.Add(-trendWindow))
	if err != nil {
		return nil, err
	}
	if trend == nil {
		trend = []task.DayCount{}
	}

	overdue, err := s.taskPort.CountOverdue(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	spans, err := s.taskPort.CompletionSpans(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := s.taskPort.StatusCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Report{
		TotalTasks:             counts.Total,
		CompletedTasks:         counts.Completed,
		ByPriority:             byPriority,
		CompletionTrend:        trend,
		OverdueTasks:           overdue,
		AvgCompletionTimeHours: avgCompletionHours(spans),
		ProductivityScore:      productivityScore(counts.Completed, counts.Total),
	}, nil
}

// avgCompletionHours is the mean creation-to-completion latency in hours,
// rounded to the nearest integer. Zero when nothing has been completed.
func avgCompletionHours(spans []task.CompletionSpan) int {
	if len(spans) == 0 {
		return 0
	}
	var total float64
	for _, span := range spans {
		total += span.CompletedAt.Sub(span.CreatedAt).Hours()
	}
	return int(math.Round(total / float64(len(spans))))
}

// productivityScore is the completed share of non-archived tasks on a 0-100
// scale. Zero when the owner has no tasks.
func productivityScore(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
