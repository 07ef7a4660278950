package quest

import (
	"fmt"
	"strings"
)

// Avatar is the user's cosmetic profile.
type Avatar struct {
	Appearance  string   `json:"appearance"`
	Accessories []string `json:"accessories,omitempty"`
}

// DefaultAppearance is the appearance of a new avatar.
const DefaultAppearance = "Default"

// Customize replaces the avatar's appearance.
func (a *Avatar) Customize(appearance string) error {
	if strings.TrimSpace(appearance) == "" {
		return fmt.Errorf("appearance: %w", ErrInvalidName)
	}
	a.Appearance = appearance
	return nil
}

// AddAccessory appends an accessory.
func (a *Avatar) AddAccessory(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("accessory: %w", ErrInvalidName)
	}
	a.Accessories = append(a.Accessories, name)
	return nil
}

// User holds one player's level, experience and quests.
type User struct {
	Username         string   `json:"username"`
	Level            int      `json:"level"`
	ExperiencePoints int      `json:"experience_points"`
	ActiveQuests     []*Quest `json:"active_quests"`
	Badges           []string `json:"achievement_badges"`
	Avatar           Avatar   `json:"avatar"`
}

// NewUser returns a level 1 user with no experience.
func NewUser(username string) *User {
	return &User{
		Username:     username,
		Level:        1,
		ActiveQuests: []*Quest{},
		Badges:       []string{},
		Avatar:       Avatar{Appearance: DefaultAppearance},
	}
}

// StartQuest adds q to the active quests. Starting the same quest twice
// yields two active entries.
func (u *User) StartQuest(q *Quest) {
	u.ActiveQuests = append(u.ActiveQuests, q)
}

// CompleteQuest completes q and awards its reward. Nothing changes when q
// is not active (ErrNotActive) or its reward is negative (ErrInvalidPoints).
func (u *User) CompleteQuest(q *Quest) (Award, error) {
	i := u.activeIndex(q)
	if i < 0 {
		return Award{}, ErrNotActive
	}
	if q.RewardPoints < 0 {
		return Award{}, fmt.Errorf("quest %q: %w: %d", q.Name, ErrInvalidPoints, q.RewardPoints)
	}
	q.Complete()
	u.ActiveQuests = append(u.ActiveQuests[:i], u.ActiveQuests[i+1:]...)

	levels, err := u.EarnExperiencePoints(q.RewardPoints)
	if err != nil {
		return Award{}, err
	}
	return Award{
		Quest:    q.Name,
		Points:   q.RewardPoints,
		LevelsUp: levels,
		Level:    u.Level,
		XP:       u.ExperiencePoints,
	}, nil
}

func (u *User) activeIndex(q *Quest) int {
	for i, a := range u.ActiveQuests {
		if a == q {
			return i
		}
	}
	return -1
}

// EarnExperiencePoints adds points and levels up once per full
// PointsPerLevel held, returning the number of levels gained.
func (u *User) EarnExperiencePoints(points int) (int, error) {
	if points < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPoints, points)
	}
	u.ExperiencePoints += points

	levels := 0
	for u.ExperiencePoints >= PointsPerLevel {
		u.Level++
		u.ExperiencePoints -= PointsPerLevel
		levels++
	}
	return levels, nil
}

// AwardBadge records an achievement badge.
func (u *User) AwardBadge(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("badge: %w", ErrInvalidName)
	}
	u.Badges = append(u.Badges, name)
	return nil
}
