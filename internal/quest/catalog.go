package quest

type entry struct {
	key, name, description string
	reward                 int
}

var catalog = []entry{
	{"learn-skill", "Learn a New Skill", "", 200},
	{"fitness-challenge", "Complete a Fitness Challenge", "", 500},
	{"volunteer", "Volunteer for a Cause", "", 1000},
	{"read-book", "Read a Book", "Read a book on a topic of interest or personal development.", 300},
	{"savings-plan", "Start a Savings Plan", "Begin a savings plan to achieve a financial goal.", 800},
	{"time-management", "Improve Time Management", "Implement strategies to improve time management.", 400},
	{"diy-project", "Complete a DIY Project", "Undertake a do-it-yourself project.", 600},
	{"workshop", "Attend a Workshop or Seminar", "Participate in a workshop or seminar.", 700},
	{"mindfulness", "Practice Mindfulness", "Incorporate mindfulness practices into your daily routine.", 300},
	{"new-recipe", "Learn a New Recipe", "Discover and prepare a new recipe from a cuisine you're not familiar with.", 250},
	{"home-organization", "Complete a Home Organization Project", "Tackle a home organization project.", 400},
	{"explore-nature", "Explore Nature", "Spend time outdoors exploring nature.", 350},
	{"start-journal", "Start a Journal", "Begin journaling to reflect on your thoughts, feelings, and experiences.", 200},
	{"networking", "Attend a Networking Event", "Attend a networking event or professional meetup.", 500},
	{"instrument", "Learn a New Instrument", "Challenge yourself to learn to play a musical instrument.", 600},
	{"physical-challenge", "Complete a Physical Challenge", "Set and achieve a physical challenge.", 1000},
	{"garden", "Start a Garden", "Start a garden at home and nurture it over time.", 450},
	{"communication", "Improve Communication Skills", "Work on improving your communication skills.", 400},
}

// Catalog returns fresh instances of the built-in quests.
func Catalog() []*Quest {
	out := make([]*Quest, len(catalog))
	for i, e := range catalog {
		out[i] = &Quest{Key: e.key, Name: e.name, Description: e.description, RewardPoints: e.reward}
	}
	return out
}

// Lookup returns a fresh instance of the catalog quest with the given key.
func Lookup(key string) (*Quest, bool) {
	for _, e := range catalog {
		if e.key == key {
			return &Quest{Key: e.key, Name: e.name, Description: e.description, RewardPoints: e.reward}, true
		}
	}
	return nil, false
}
