package taxonomy

import "skillmatch/internal/domain/skill"

// DefaultSkills is the built-in technology catalog used when no curated
// catalog exists yet. Demand figures are coarse market signals, not truths.
func DefaultSkills() []skill.Skill {
	return []skill.Skill{
		{ID: "python", Name: "Python", Category: "language", Aliases: []string{"py"}, Difficulty: 3, Demand: 0.95},
		{ID: "javascript", Name: "JavaScript", Category: "language", Aliases: []string{"js", "ecmascript"}, Difficulty: 3, Demand: 0.92},
		{ID: "typescript", Name: "TypeScript", Category: "language", Aliases: []string{"ts"}, Difficulty: 4, Demand: 0.88},
		{ID: "go", Name: "Go", Category: "language", Aliases: []string{"golang"}, Difficulty: 4, Demand: 0.78},
		{ID: "java", Name: "Java", Category: "language", Difficulty: 5, Demand: 0.80},
		{ID: "csharp", Name: "C#", Category: "language", Aliases: []string{"c#"}, Difficulty: 5, Demand: 0.72},
		{ID: "rust", Name: "Rust", Category: "language", Difficulty: 8, Demand: 0.55},
		{ID: "sql", Name: "SQL", Category: "language", Difficulty: 3, Demand: 0.90},
		{ID: "html-css", Name: "HTML & CSS", Category: "frontend", Aliases: []string{"html", "css"}, Difficulty: 2, Demand: 0.70},
		{ID: "frontend", Name: "Frontend Development", Category: "discipline", Aliases: []string{"front-end"}, Difficulty: 6, Demand: 0.85},
		{ID: "react", Name: "React", Category: "frontend", Aliases: []string{"reactjs", "react.js"}, Difficulty: 5, Demand: 0.90},
		{ID: "vue", Name: "Vue.js", Category: "frontend", Aliases: []string{"vuejs"}, Difficulty: 5, Demand: 0.65},
		{ID: "angular", Name: "Angular", Category: "frontend", Difficulty: 6, Demand: 0.60},
		{ID: "nextjs", Name: "Next.js", Category: "frontend", Aliases: []string{"next"}, Difficulty: 5, Demand: 0.72},
		{ID: "backend", Name: "Backend Development", Category: "discipline", Aliases: []string{"back-end"}, Difficulty: 6, Demand: 0.88},
		{ID: "nodejs", Name: "Node.js", Category: "backend", Aliases: []string{"node"}, Difficulty: 4, Demand: 0.82},
		{ID: "django", Name: "Django", Category: "backend", Difficulty: 5, Demand: 0.60},
		{ID: "spring", Name: "Spring Boot", Category: "backend", Aliases: []string{"spring-boot"}, Difficulty: 6, Demand: 0.68},
		{ID: "graphql", Name: "GraphQL", Category: "api", Difficulty: 5, Demand: 0.58},
		{ID: "rest-api", Name: "REST APIs", Category: "api", Aliases: []string{"rest"}, Difficulty: 3, Demand: 0.85},
		{ID: "postgresql", Name: "PostgreSQL", Category: "database", Aliases: []string{"postgres"}, Difficulty: 5, Demand: 0.84},
		{ID: "mysql", Name: "MySQL", Category: "database", Difficulty: 4, Demand: 0.70},
		{ID: "mongodb", Name: "MongoDB", Category: "database", Aliases: []string{"mongo"}, Difficulty: 4, Demand: 0.66},
		{ID: "redis", Name: "Redis", Category: "database", Difficulty: 4, Demand: 0.64},
		{ID: "data-engineering", Name: "Data Engineering", Category: "discipline", Difficulty: 7, Demand: 0.75},
		{ID: "spark", Name: "Apache Spark", Category: "data", Aliases: []string{"pyspark"}, Difficulty: 7, Demand: 0.62},
		{ID: "pandas", Name: "Pandas", Category: "data", Difficulty: 4, Demand: 0.70},
		{ID: "machine-learning", Name: "Machine Learning", Category: "ai", Aliases: []string{"ml"}, Difficulty: 8, Demand: 0.86},
		{ID: "deep-learning", Name: "Deep Learning", Category: "ai", Aliases: []string{"dl"}, Difficulty: 9, Demand: 0.72},
		{ID: "statistics", Name: "Statistics", Category: "ai", Difficulty: 7, Demand: 0.66},
		{ID: "devops", Name: "DevOps", Category: "discipline", Difficulty: 7, Demand: 0.80},
		{ID: "docker", Name: "Docker", Category: "infrastructure", Aliases: []string{"containers"}, Difficulty: 4, Demand: 0.86},
		{ID: "kubernetes", Name: "Kubernetes", Category: "infrastructure", Aliases: []string{"k8s"}, Difficulty: 7, Demand: 0.82},
		{ID: "terraform", Name: "Terraform", Category: "infrastructure", Difficulty: 6, Demand: 0.68},
		{ID: "aws", Name: "AWS", Category: "cloud", Aliases: []string{"amazon-web-services"}, Difficulty: 5, Demand: 0.90},
		{ID: "gcp", Name: "GCP", Category: "cloud", Aliases: []string{"google-cloud"}, Difficulty: 5, Demand: 0.70},
		{ID: "azure", Name: "Azure", Category: "cloud", Difficulty: 5, Demand: 0.72},
		{ID: "linux", Name: "Linux", Category: "infrastructure", Aliases: []string{"unix"}, Difficulty: 4, Demand: 0.75},
		{ID: "ci-cd", Name: "CI/CD", Category: "infrastructure", Aliases: []string{"continuous-integration"}, Difficulty: 3, Demand: 0.74},
		{ID: "git", Name: "Git", Category: "tooling", Difficulty: 1, Demand: 0.80},
	}
}

// DefaultRelationships complements DefaultSkills. The edge set is acyclic per
// kind; LoadDefaults verifies that on every start.
func DefaultRelationships() []skill.Relationship {
	parent := func(src, tgt string, w float64) skill.Relationship {
		return skill.Relationship{Source: src, Target: tgt, Kind: skill.ParentOf, Weight: w}
	}
	equiv := func(src, tgt string, w float64) skill.Relationship {
		return skill.Relationship{Source: src, Target: tgt, Kind: skill.EquivalentTo, Weight: w}
	}
	prereq := func(src, tgt string, w float64) skill.Relationship {
		return skill.Relationship{Source: src, Target: tgt, Kind: skill.PrerequisiteOf, Weight: w}
	}

	return []skill.Relationship{
		parent("frontend", "react", 0.9),
		parent("frontend", "vue", 0.9),
		parent("frontend", "angular", 0.9),
		parent("frontend", "html-css", 0.8),
		parent("backend", "nodejs", 0.9),
		parent("backend", "django", 0.9),
		parent("backend", "spring", 0.9),
		parent("devops", "docker", 0.9),
		parent("devops", "kubernetes", 0.9),
		parent("devops", "terraform", 0.8),
		parent("devops", "ci-cd", 0.8),
		parent("data-engineering", "spark", 0.9),
		parent("machine-learning", "deep-learning", 0.9),
		parent("react", "nextjs", 0.9),

		equiv("react", "vue", 0.7),
		equiv("aws", "gcp", 0.75),
		equiv("aws", "azure", 0.75),
		equiv("postgresql", "mysql", 0.7),

		prereq("javascript", "typescript", 0.9),
		prereq("javascript", "react", 0.9),
		prereq("javascript", "vue", 0.9),
		prereq("javascript", "nodejs", 0.9),
		prereq("typescript", "angular", 0.8),
		prereq("html-css", "react", 0.7),
		prereq("react", "nextjs", 0.9),
		prereq("python", "django", 0.9),
		prereq("python", "pandas", 0.8),
		prereq("python", "machine-learning", 0.8),
		prereq("python", "spark", 0.6),
		prereq("statistics", "machine-learning", 0.8),
		prereq("machine-learning", "deep-learning", 0.9),
		prereq("sql", "postgresql", 0.8),
		prereq("sql", "mysql", 0.8),
		prereq("sql", "data-engineering", 0.8),
		prereq("java", "spring", 0.9),
		prereq("docker", "kubernetes", 0.9),
		prereq("linux", "docker", 0.7),
		prereq("git", "ci-cd", 0.7),
	}
}

// LoadDefaults fills an empty store with the built-in catalog.
func LoadDefaults(s *Store) error {
	for _, sk := range DefaultSkills() {
		if err := s.AddSkill(sk); err != nil {
			return err
		}
	}
	for _, r := range DefaultRelationships() {
		if err := s.AddRelationship(r); err != nil {
			return err
		}
	}
	return nil
}
