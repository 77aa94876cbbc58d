package club

// Default palette used when the profile has no (valid) colors.
const (
	DefaultPrimaryColor   = "#3b82f6"
	DefaultSecondaryColor = "#8b5cf6"
)

// DefaultProfile is shown until /api/club yields a profile.
func DefaultProfile() Profile {
	return Profile{
		Name:           "Your Club Name",
		Tagline:        "Innovate • Inspire • Impact",
		About:          "A student-run community hosting meetups, hackathons and hands-on workshops.",
		Vision:         "To cultivate a culture of curiosity and collaboration.",
		Mission:        "Enable every student to learn by building and sharing.",
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
	}
}

// DefaultEvents is shown until /api/events yields at least one event.
func DefaultEvents() []Event {
	return []Event{
		{Title: "Welcome Orientation", Date: "2024-08-10", Location: "Auditorium", Description: "Kickoff with club intro and games", Tags: []string{"Orientation", "Fun"}},
		{Title: "Web Dev Workshop", Date: "2024-09-05", Location: "Lab 3", Description: "Modern React + Tailwind session", Tags: []string{"Workshop", "React"}},
		{Title: "Hack Night", Date: "2024-10-21", Location: "Innovation Hub", Description: "Build something cool in 4 hours!", Tags: []string{"Hackathon"}},
	}
}

// DefaultTeam is shown until /api/team yields at least one member.
func DefaultTeam() []Member {
	return []Member{
		{Name: "Alex Johnson", Role: "President"},
		{Name: "Priya Singh", Role: "Vice President"},
		{Name: "Rahul Mehta", Role: "Tech Lead"},
		{Name: "Sara Lee", Role: "Design Lead"},
	}
}

// DefaultSocials is shown until /api/socials yields at least one link.
func DefaultSocials() []Social {
	return []Social{
		{Platform: "Instagram", URL: "https://instagram.com"},
		{Platform: "Twitter", URL: "https://twitter.com"},
		{Platform: "LinkedIn", URL: "https://linkedin.com"},
	}
}
