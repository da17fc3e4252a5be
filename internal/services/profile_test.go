package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/odai307/gagoforge-client/internal/models"
)

func TestStatsSummaryFallsBackToLegacyStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/api/users/profiles/stats_summary/", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	})
	engine.GET("/api/users/profiles/stats/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"total_problems_solved":    5,
			"total_problems_attempted": 9,
			"total_score":              "450.5",
			"streaks":                  gin.H{"current": 2, "longest": 6},
		})
	})

	api := newAPIClient(t, engine)
	svc := NewProfileService(api, NewSubmissionService(api))

	summary, err := svc.StatsSummary(context.Background())
	if err != nil {
		t.Fatalf("StatsSummary: %v", err)
	}
	if summary.Overview.TotalProblemsSolved != 5 {
		t.Errorf("TotalProblemsSolved = %d, want 5", summary.Overview.TotalProblemsSolved)
	}
	if summary.Overview.TotalScore.Float() != 450.5 {
		t.Errorf("TotalScore = %v, want 450.5", summary.Overview.TotalScore.Float())
	}
	if summary.Streaks.Longest != 6 {
		t.Errorf("Streaks.Longest = %d, want 6", summary.Streaks.Longest)
	}
	if len(summary.Frameworks) != 0 {
		t.Errorf("legacy fallback carried framework tables: %v", summary.Frameworks)
	}
}

func TestRecentActivityFallsBackToSubmissionsList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/api/users/profiles/recent_activity/", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "boom"})
	})
	engine.GET("/api/submissions/", func(c *gin.Context) {
		if got := c.Query("ordering"); got != "-submitted_at" {
			t.Errorf("ordering = %q, want -submitted_at", got)
		}
		results := make([]gin.H, 0, 12)
		for i := 0; i < 12; i++ {
			results = append(results, gin.H{"id": i + 1, "verdict": "accepted"})
		}
		c.JSON(http.StatusOK, gin.H{"count": 12, "results": results})
	})

	api := newAPIClient(t, engine)
	svc := NewProfileService(api, NewSubmissionService(api))

	activity, err := svc.RecentActivity(context.Background())
	if err != nil {
		t.Fatalf("RecentActivity: %v", err)
	}
	if len(activity) != 10 {
		t.Errorf("len(activity) = %d, want fallback capped at 10", len(activity))
	}
}

func TestSubmitRejectsInvalidRequestLocally(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/api/submissions/", func(c *gin.Context) {
		t.Error("blank submission reached the network")
	})

	svc := NewSubmissionService(newAPIClient(t, engine))
	req := models.SubmissionRequest{Problem: "1", Code: "   ", Language: "javascript"}
	if _, err := svc.Submit(context.Background(), req); err == nil {
		t.Error("Submit accepted blank code")
	}
}

func TestDisputeRequiresReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	var gotReason string
	engine.POST("/api/submissions/:id/dispute/", func(c *gin.Context) {
		var body struct {
			DisputeReason string `json:"dispute_reason"`
		}
		c.ShouldBindJSON(&body)
		gotReason = body.DisputeReason
		c.JSON(http.StatusOK, gin.H{"status": "disputed"})
	})

	svc := NewSubmissionService(newAPIClient(t, engine))
	if err := svc.Dispute(context.Background(), "5", "   "); err == nil {
		t.Error("Dispute accepted a blank reason")
	}
	if err := svc.Dispute(context.Background(), "5", "scoring looks wrong"); err != nil {
		t.Fatalf("Dispute: %v", err)
	}
	if gotReason != "scoring looks wrong" {
		t.Errorf("dispute_reason = %q, want the given reason", gotReason)
	}
}
