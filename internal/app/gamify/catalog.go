package gamify

import "github.com/momentum-labs/momentum/internal/domain"

// ─── Default Catalogs ───────────────────────────────────────────────────────
// The achievement catalog is declared in a fixed order; that order decides
// which achievements fire first when several become satisfied in the same
// evaluation pass. Custom achievements are appended after these.

// DefaultAchievements returns the built-in achievement catalog.
func DefaultAchievements() []domain.Achievement {
	return []domain.Achievement{
		// ── Getting started ────────────────────────────────────────────
		{
			ID: "first_task", Title: "First Steps", Icon: "🎯",
			Description: "Complete your first task",
			Condition:   domain.Condition{Type: domain.CondTasksCompleted, Count: 1},
			XPReward:    10,
		},
		{
			ID: "tasks_10", Title: "Getting Things Done", Icon: "✅",
			Description: "Complete 10 tasks",
			Condition:   domain.Condition{Type: domain.CondTasksCompleted, Count: 10},
			XPReward:    50,
		},
		{
			ID: "tasks_100", Title: "Centurion", Icon: "💯",
			Description: "Complete 100 tasks",
			Condition:   domain.Condition{Type: domain.CondTasksCompleted, Count: 100},
			XPReward:    300,
		},
		{
			ID: "tasks_1000", Title: "Task Master", Icon: "👑",
			Description: "Complete 1000 tasks",
			Condition:   domain.Condition{Type: domain.CondTasksCompleted, Count: 1000},
			XPReward:    2000,
		},

		// ── Streaks ────────────────────────────────────────────────────
		{
			ID: "streak_3", Title: "Warming Up", Icon: "🔥",
			Description: "Stay active 3 days in a row",
			Condition:   domain.Condition{Type: domain.CondStreakDays, Count: 3},
			XPReward:    30,
		},
		{
			ID: "streak_7", Title: "Week Warrior", Icon: "🔥",
			Description: "Stay active 7 days in a row",
			Condition:   domain.Condition{Type: domain.CondStreakDays, Count: 7},
			XPReward:    100,
		},
		{
			ID: "streak_30", Title: "Monthly Machine", Icon: "💪",
			Description: "Stay active 30 days in a row",
			Condition:   domain.Condition{Type: domain.CondStreakDays, Count: 30},
			XPReward:    500,
		},

		// ── Focus timer ────────────────────────────────────────────────
		{
			ID: "timer_1h", Title: "Deep Worker", Icon: "⏱️",
			Description: "Accumulate 1 hour of focused time",
			Condition:   domain.Condition{Type: domain.CondTimerTotal, Seconds: 3600},
			XPReward:    40,
		},
		{
			ID: "timer_24h", Title: "Flow State", Icon: "🧘",
			Description: "Accumulate 24 hours of focused time",
			Condition:   domain.Condition{Type: domain.CondTimerTotal, Seconds: 24 * 3600},
			XPReward:    400,
		},
		{
			ID: "speed_demon", Title: "Speed Demon", Icon: "⚡",
			Description: "Finish a task in under 5 minutes",
			Condition:   domain.Condition{Type: domain.CondSpeedDemon, Seconds: 300},
			XPReward:    60,
		},

		// ── Habits ─────────────────────────────────────────────────────
		{
			ID: "early_bird_5", Title: "Early Bird", Icon: "🌅",
			Description: "Complete 5 tasks before 9am",
			Condition:   domain.Condition{Type: domain.CondEarlyBird, Count: 5},
			XPReward:    80,
		},
		{
			ID: "do_first_25", Title: "Priority Pro", Icon: "🎖️",
			Description: "Complete 25 do-first tasks",
			Condition: domain.Condition{
				Type: domain.CondQuadrantMaster, Quadrant: domain.QuadrantDoFirst, Count: 25,
			},
			XPReward: 150,
		},
		{
			ID: "perfect_day", Title: "Perfect Day", Icon: "🌟",
			Description: "Finish every task planned for a day",
			Condition:   domain.Condition{Type: domain.CondPerfectDay, Count: 1},
			XPReward:    70,
		},
		{
			ID: "perfect_week", Title: "Perfectionist", Icon: "✨",
			Description: "Rack up 7 perfect days",
			Condition:   domain.Condition{Type: domain.CondPerfectDay, Count: 7},
			XPReward:    350,
		},
		{
			ID: "consistency_30", Title: "Regular", Icon: "📅",
			Description: "Be active on 30 distinct days",
			Condition:   domain.Condition{Type: domain.CondConsistency, Days: 30},
			XPReward:    250,
		},
	}
}

// DefaultRewards returns the built-in reward catalog.
// Rewards are unlocked markers gated on total XP, not a currency sink.
func DefaultRewards() []domain.Reward {
	return []domain.Reward{
		{ID: "break_15", Title: "15-Minute Break", Icon: "☕", Description: "Take a guilt-free 15-minute break", XPCost: 50},
		{ID: "episode", Title: "One Episode", Icon: "📺", Description: "Watch an episode of your favorite show", XPCost: 150},
		{ID: "treat", Title: "Sweet Treat", Icon: "🍰", Description: "Have that dessert you have been eyeing", XPCost: 300},
		{ID: "movie_night", Title: "Movie Night", Icon: "🎬", Description: "A full movie night, zero guilt", XPCost: 600},
		{ID: "day_off", Title: "Day Off", Icon: "🏖️", Description: "Take a whole day off", XPCost: 2000},
	}
}

// NewState returns a fresh gamification state with the default catalogs.
func NewState() *domain.GamificationState {
	return &domain.GamificationState{
		Level:                1,
		QuadrantCounts:       make(map[domain.Quadrant]int),
		DailyCompletionDates: make(map[string]bool),
		PerfectDayDates:      make(map[string]bool),
		Achievements:         DefaultAchievements(),
		Rewards:              DefaultRewards(),
	}
}
