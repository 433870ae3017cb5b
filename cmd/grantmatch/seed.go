package main

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/grantmatch/core"
	"github.com/urfave/cli/v2"
)

var sampleGrants = []*core.GrantRecord{
	{
		Source:      "otf",
		ProgramName: "Youth Opportunities Fund",
		Description: "Supports community-led projects that improve wellbeing outcomes for youth facing barriers, including newcomer and immigrant youth. Projects are designed and delivered by the communities they serve.",
		Eligibility: "Registered non-profits and grassroots groups serving youth aged 12 to 25 in Ontario. Priority for organizations led by the communities served.",
		FundingLow:  "$5,000",
		FundingHigh: "$75,000",
		Deadline:    "2026-09-15",
		URL:         "https://otf.ca/our-grants/youth-opportunities-fund",
	},
	{
		Source:      "otf",
		ProgramName: "Seed Grant",
		Description: "Helps small organizations test a new idea or pilot a community project. Funds early-stage work with a clear plan for learning from the pilot.",
		Eligibility: "Non-profits with annual revenue under $500,000. First-time applicants welcome.",
		FundingLow:  "$10,000",
		FundingHigh: "$100,000",
		Deadline:    "2026-10-01",
		URL:         "https://otf.ca/our-grants/community-investments/seed-grant",
	},
	{
		Source:      "federal",
		ProgramName: "Veteran and Family Well-Being Fund",
		Description: "Funds research and initiatives that improve the well-being of veterans and their families, including transition to civilian life and employment programs for former military members.",
		Eligibility: "Non-profits, research institutions, and Indigenous organizations.",
		FundingLow:  "$50,000",
		FundingHigh: "$250,000",
		Deadline:    "2026-11-30",
		URL:         "https://example.gc.ca/veteran-family-well-being",
	},
	{
		Source:      "federal",
		ProgramName: "Indigenous Community Support Program",
		Description: "Provides direct support to First Nation, Inuit, and Metis communities for community-designed wellness, culture, and language initiatives led by indigenous organizations.",
		Eligibility: "First Nation bands, Inuit and Metis organizations, and urban indigenous community groups.",
		FundingLow:  "$25,000",
		FundingHigh: "$500,000",
		URL:         "https://example.gc.ca/indigenous-community-support",
	},
	{
		Source:      "provincial",
		ProgramName: "Women Entrepreneurship Strategy",
		Description: "Supports women-led businesses and non-profits advancing economic opportunities for women, with a focus on mentorship, skills training, and access to capital.",
		Eligibility: "Women-led organizations and businesses operating in Canada.",
		FundingLow:  "$25,000",
		FundingHigh: "$100,000",
		Deadline:    "2026-08-31",
		URL:         "https://example.ca/women-entrepreneurship",
	},
	{
		Source:      "provincial",
		ProgramName: "Senior Community Programs Grant",
		Description: "Funds programs that reduce social isolation among senior and elder residents, including intergenerational activities and accessible community spaces.",
		Eligibility: "Municipalities and non-profits serving adults aged 65 and over.",
		FundingLow:  "$5,000",
		FundingHigh: "$25,000",
		URL:         "https://example.ca/seniors-community-programs",
	},
	{
		Source:      "foundation",
		ProgramName: "Student Innovation Challenge",
		Description: "Awards funding to student teams prototyping solutions to local civic problems. Open to college and university student groups with a faculty sponsor.",
		Eligibility: "Post-secondary student teams. Youth under 30 encouraged to apply.",
		FundingLow:  "$2,500",
		FundingHigh: "$20,000",
		Deadline:    "2026-09-30",
		URL:         "https://example.org/student-innovation",
	},
	{
		Source:      "foundation",
		ProgramName: "Newcomer Settlement Partnership",
		Description: "Supports settlement services for immigrant and newcomer families: language training, employment bridging, and community connection programs.",
		Eligibility: "Settlement agencies and community organizations serving newcomers.",
		FundingLow:  "$15,000",
		FundingHigh: "$150,000",
		URL:         "https://example.org/newcomer-settlement",
	},
}

var sampleUser = &core.UserProfile{
	UserID:          "demo_1",
	Name:            "Mahi Singh",
	Age:             23,
	Residency:       "Toronto, ON",
	Gender:          "Female",
	StudentStatus:   "Full-time",
	ImmigrantStatus: "Yes",
	FundingGoalLow:  5000,
	FundingGoalHigh: 20000,
	FundingPurpose:  []string{"education", "community project"},
	EligibilityTags: []string{"student", "immigrant", "youth"},
	ProjectSummary:  "A peer tutoring network connecting newcomer high school students with university student mentors in their first language.",
}

func seedCommand(c *cli.Context) error {
	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	ctx := context.Background()

	// Stagger scrape times so catalog order is stable across reruns
	now := time.Now().UTC()
	for i, grant := range sampleGrants {
		grant.ScrapedAt = now.Add(-time.Duration(i) * time.Minute)
	}

	added, err := service.GrantRepository().AddGrants(ctx, sampleGrants...)
	if err != nil {
		return fmt.Errorf("failed to seed grants: %w", err)
	}

	if err := service.UserRepository().PutUser(ctx, sampleUser); err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	fmt.Printf("Seeded %d grants and user %q\n", len(added), sampleUser.UserID)
	fmt.Println("Next: grantmatch generate, then grantmatch match --user demo_1")
	return nil
}
