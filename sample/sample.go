// Package sample provides a deterministic dataset for exercising the
// analysis and report pipeline without a live scrape.
package sample

import (
	"github.com/aviguptakonda/yc-demoday-batch/company"
)

type seed struct {
	name        string
	description string
	url         string
	categories  []string
	founders    []company.Founder
}

var seeds = []seed{
	{
		name:        "TechFlow AI",
		description: "AI-powered workflow automation platform that helps teams streamline their processes and increase productivity by 300%.",
		url:         "https://techflow.ai",
		categories:  []string{"AI/ML", "Productivity", "SaaS"},
		founders: []company.Founder{
			{Name: "Sarah Chen", ProfileURL: "https://linkedin.com/in/sarah-chen-ai", ProfileType: company.ProfileLinkedIn, Title: "CEO & Co-founder"},
			{Name: "Michael Rodriguez", ProfileURL: "https://linkedin.com/in/michael-rodriguez-tech", ProfileType: company.ProfileLinkedIn, Title: "CTO & Co-founder"},
		},
	},
	{
		name:        "GreenEnergy Solutions",
		description: "Revolutionary renewable energy storage technology that makes solar power accessible to every household.",
		url:         "https://greenenergy.solutions",
		categories:  []string{"Clean Energy", "Hardware", "Sustainability"},
		founders: []company.Founder{
			{Name: "Alex Thompson", ProfileURL: "https://linkedin.com/in/alex-thompson-energy", ProfileType: company.ProfileLinkedIn, Title: "Founder & CEO"},
		},
	},
	{
		name:        "HealthSync",
		description: "Digital health platform connecting patients with healthcare providers through AI-driven matching and telemedicine.",
		url:         "https://healthsync.com",
		categories:  []string{"Healthcare", "Telemedicine", "AI/ML"},
		founders: []company.Founder{
			{Name: "Dr. Emily Watson", ProfileURL: "https://linkedin.com/in/emily-watson-md", ProfileType: company.ProfileLinkedIn, Title: "CEO & Co-founder"},
			{Name: "David Kim", ProfileURL: "https://twitter.com/davidkim_health", ProfileType: company.ProfileTwitter, Title: "CTO & Co-founder"},
		},
	},
	{
		name:        "EduTech Pro",
		description: "Personalized learning platform using adaptive AI to create custom educational experiences for students of all ages.",
		url:         "https://edutechpro.com",
		categories:  []string{"EdTech", "AI/ML", "Education"},
		founders: []company.Founder{
			{Name: "Lisa Park", ProfileURL: "https://linkedin.com/in/lisa-park-edu", ProfileType: company.ProfileLinkedIn, Title: "Founder & CEO"},
			{Name: "James Wilson", ProfileURL: "https://github.com/jameswilson-edu", ProfileType: company.ProfileGitHub, Title: "Co-founder & CTO"},
		},
	},
	{
		name:        "FinTech Secure",
		description: "Next-generation financial security platform protecting digital assets with quantum-resistant encryption.",
		url:         "https://fintechsecure.com",
		categories:  []string{"FinTech", "Cybersecurity", "Blockchain"},
		founders: []company.Founder{
			{Name: "Robert Zhang", ProfileURL: "https://linkedin.com/in/robert-zhang-fintech", ProfileType: company.ProfileLinkedIn, Title: "CEO & Co-founder"},
			{Name: "Maria Garcia", ProfileURL: "https://linkedin.com/in/maria-garcia-crypto", ProfileType: company.ProfileLinkedIn, Title: "CTO & Co-founder"},
		},
	},
	{
		name:        "BioTech Innovations",
		description: "Cutting-edge biotechnology company developing novel therapeutics for rare diseases using CRISPR technology.",
		url:         "https://biotechinnovations.com",
		categories:  []string{"Biotech", "Healthcare", "Research"},
		founders: []company.Founder{
			{Name: "Dr. Rachel Green", ProfileURL: "https://linkedin.com/in/rachel-green-phd", ProfileType: company.ProfileLinkedIn, Title: "CEO & Co-founder"},
			{Name: "Dr. Kevin Lee", ProfileURL: "https://linkedin.com/in/kevin-lee-biotech", ProfileType: company.ProfileLinkedIn, Title: "CSO & Co-founder"},
		},
	},
	{
		name:        "DevTools Hub",
		description: "Comprehensive developer tools platform that streamlines the entire software development lifecycle.",
		url:         "https://devtoolshub.com",
		categories:  []string{"Developer Tools", "SaaS", "Productivity"},
		founders: []company.Founder{
			{Name: "Chris Anderson", ProfileURL: "https://github.com/chrisanderson-dev", ProfileType: company.ProfileGitHub, Title: "Founder & CEO"},
		},
	},
	{
		name:        "Consumer Connect",
		description: "AI-powered consumer insights platform helping brands understand and connect with their customers better.",
		url:         "https://consumerconnect.ai",
		categories:  []string{"Consumer", "AI/ML", "Analytics"},
		founders: []company.Founder{
			{Name: "Jennifer Martinez", ProfileURL: "https://linkedin.com/in/jennifer-martinez-consumer", ProfileType: company.ProfileLinkedIn, Title: "CEO & Co-founder"},
			{Name: "Tom Johnson", ProfileURL: "https://twitter.com/tomjohnson_ai", ProfileType: company.ProfileTwitter, Title: "CTO & Co-founder"},
		},
	},
	{
		name:        "Enterprise Flow",
		description: "Enterprise workflow automation platform designed for large organizations to optimize their operations.",
		url:         "https://enterpriseflow.com",
		categories:  []string{"Enterprise", "SaaS", "Automation"},
		founders: []company.Founder{
			{Name: "Amanda Foster", ProfileURL: "https://linkedin.com/in/amanda-foster-enterprise", ProfileType: company.ProfileLinkedIn, Title: "Founder & CEO"},
			{Name: "Daniel Brown", ProfileURL: "https://linkedin.com/in/daniel-brown-tech", ProfileType: company.ProfileLinkedIn, Title: "Co-founder & CTO"},
		},
	},
	{
		name:        "Hardware Labs",
		description: "Innovative hardware company developing next-generation IoT devices for smart homes and cities.",
		url:         "https://hardwarelabs.io",
		categories:  []string{"Hardware", "IoT", "Smart Cities"},
		founders: []company.Founder{
			{Name: "Ryan Davis", ProfileURL: "https://linkedin.com/in/ryan-davis-hardware", ProfileType: company.ProfileLinkedIn, Title: "CEO & Co-founder"},
			{Name: "Sophie Chen", ProfileURL: "https://github.com/sophiechen-hw", ProfileType: company.ProfileGitHub, Title: "CTO & Co-founder"},
		},
	},
}

// Companies returns the sample dataset for the given batch. Each call
// builds fresh records so callers may modify them freely.
func Companies(batch string) []company.Company {
	records := make([]company.Company, 0, len(seeds))
	for _, s := range seeds {
		c, ok := company.New(s.name, s.description, s.url, s.categories, batch)
		if !ok {
			continue
		}
		records = append(records, c.WithFounders(s.founders))
	}
	return records
}
