package models

import (
	"errors"
	"strings"
	"time"
)

type User struct {
	ID        FlexID `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	if !strings.Contains(r.Email, "@") {
		return errors.New("a valid email is required")
	}
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type AuthTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type RegisterResponse struct {
	User   User       `json:"user"`
	Tokens AuthTokens `json:"tokens"`
}

type Profile struct {
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Bio                string    `json:"bio"`
	PreferredLanguage  string    `json:"preferred_language"`
	Theme              string    `json:"theme"`
	EmailNotifications bool      `json:"email_notifications"`
	GithubUsername     string    `json:"github_username"`
	WebsiteURL         string    `json:"website_url"`
	CreatedAt          time.Time `json:"created_at"`
}

// PreferencesUpdate is the PATCH body for update_preferences. Fields are
// sent at the top level, not nested under "user".
type PreferencesUpdate struct {
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	PreferredLanguage  string `json:"preferred_language"`
	Theme              string `json:"theme"`
	EmailNotifications bool   `json:"email_notifications"`
	Bio                string `json:"bio"`
	GithubUsername     string `json:"github_username"`
	WebsiteURL         string `json:"website_url"`
}

type StatsOverview struct {
	TotalProblemsSolved    int    `json:"total_problems_solved"`
	TotalProblemsAttempted int    `json:"total_problems_attempted"`
	TotalSubmissions       int    `json:"total_submissions"`
	TotalScore             Number `json:"total_score"`
	GlobalRank             int    `json:"global_rank,omitempty"`
}

type Streaks struct {
	Current      int    `json:"current"`
	Longest      int    `json:"longest"`
	LastActivity string `json:"last_activity,omitempty"`
}

type FrameworkStat struct {
	Name        string `json:"name"`
	Solved      int    `json:"solved"`
	Total       int    `json:"total"`
	Proficiency int    `json:"proficiency"`
	Remaining   int    `json:"remaining"`
}

type DifficultyStat struct {
	Level      string `json:"level"`
	Solved     int    `json:"solved"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Remaining  int    `json:"remaining"`
	Color      string `json:"color"`
}

// StatsSummary mirrors /api/users/profiles/stats_summary/.
type StatsSummary struct {
	Overview     StatsOverview             `json:"overview"`
	Frameworks   map[string]FrameworkStat  `json:"frameworks,omitempty"`
	Difficulties map[string]DifficultyStat `json:"difficulties,omitempty"`
	Streaks      Streaks                   `json:"streaks"`
}

type RecentActivity struct {
	RecentSubmissions []Submission `json:"recent_submissions"`
}

type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	Username       string `json:"username"`
	Score          Number `json:"score"`
	ProblemsSolved int    `json:"problems_solved"`
}

type LeaderboardRank struct {
	Rank       int    `json:"rank"`
	Percentile Number `json:"percentile,omitempty"`
}

// EditableFields mirrors /api/users/profiles/editable_fields/.
type EditableFields struct {
	AvailableOptions struct {
		Themes    []string `json:"themes"`
		Languages []string `json:"languages"`
	} `json:"available_options"`
}
