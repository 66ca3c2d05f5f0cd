package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vocaprep/interview-engine/internal/entity"
)

// domainCatalog represents the structure of domains.json
type domainCatalog struct {
	Domains []entity.Domain `json:"domains"`
}

// defaultDomains is the compiled-in catalog used when domains.json is
// absent. Reference concepts drive the technical analyzer; templates are
// the authoritative fallback question pools.
var defaultDomains = []entity.Domain{
	{
		ID:          "software",
		Name:        "Software Engineering",
		Description: "Coding, algorithms, system design",
		ReferenceConcepts: []string{
			"algorithm", "data structure", "hash map", "array", "linked list",
			"api", "database", "complexity", "testing", "design pattern",
		},
		QuestionTemplates: map[entity.ExperienceLevel][]string{
			entity.LevelFresher: {
				"What is object-oriented programming? Explain with an example.",
				"Describe the difference between an array and a linked list.",
				"What is the time complexity of binary search?",
				"Explain what a REST API is.",
				"What is version control and why is it important?",
			},
			entity.LevelIntermediate: {
				"Explain the difference between SQL and NoSQL databases.",
				"What is the difference between synchronous and asynchronous programming?",
				"Describe how you would design a caching system.",
				"What are design patterns? Give examples of common ones.",
				"Explain microservices architecture and its benefits.",
			},
			entity.LevelSenior: {
				"How would you design a system that needs to handle a sudden tenfold traffic spike?",
				"Describe a time you led a major refactoring. How did you manage risk?",
				"Explain trade-offs between consistency and availability in distributed systems.",
				"How do you approach capacity planning for a new service?",
				"Describe your strategy for evolving a public API without breaking clients.",
			},
		},
		FollowupTemplates: []string{
			"Can you elaborate on that?",
			"Can you give a specific example?",
			"How would you handle edge cases in that scenario?",
			"What challenges have you faced with this?",
			"How would you improve that approach?",
		},
	},
	{
		ID:          "data_science",
		Name:        "Data Science",
		Description: "ML, statistics, data analysis",
		ReferenceConcepts: []string{
			"machine learning", "model", "dataset", "feature", "prediction",
			"training", "accuracy", "overfitting", "regression", "classification",
		},
		QuestionTemplates: map[entity.ExperienceLevel][]string{
			entity.LevelFresher: {
				"What is the difference between supervised and unsupervised learning?",
				"Explain what overfitting means in machine learning.",
				"What is cross-validation and why is it important?",
				"Describe the difference between classification and regression.",
				"What is feature engineering?",
			},
			entity.LevelIntermediate: {
				"Explain the bias-variance tradeoff in machine learning.",
				"How would you handle missing data in a dataset?",
				"Describe different evaluation metrics for classification problems.",
				"What is regularization and why is it used?",
				"Explain the difference between bagging and boosting.",
			},
			entity.LevelSenior: {
				"How do you design an experiment to measure a model's business impact?",
				"Describe how you would detect and mitigate data drift in production.",
				"How do you approach model interpretability requirements from stakeholders?",
				"Explain how you would build a feature store for a large team.",
				"What is your strategy for monitoring and retraining deployed models?",
			},
		},
		FollowupTemplates: []string{
			"Can you elaborate on that?",
			"How would that change with a much larger dataset?",
			"What metrics would you use to validate that?",
			"Can you give a concrete example from a project?",
		},
	},
	{
		ID:          "electronics",
		Name:        "Electronics",
		Description: "Circuit design, embedded systems",
		ReferenceConcepts: []string{
			"circuit", "voltage", "current", "resistor", "transistor",
			"signal", "digital", "analog", "microcontroller", "impedance",
		},
		QuestionTemplates: map[entity.ExperienceLevel][]string{
			entity.LevelFresher: {
				"Explain Ohm's law and its applications.",
				"What is the difference between AC and DC current?",
				"Describe what a transistor does in a circuit.",
				"What is a microcontroller and how does it differ from a microprocessor?",
				"Explain the concept of voltage, current, and resistance.",
			},
			entity.LevelIntermediate: {
				"How would you design a power supply circuit?",
				"Explain the difference between analog and digital signals.",
				"Describe how a MOSFET works.",
				"What is signal processing and why is it important?",
				"Explain the concept of impedance in AC circuits.",
			},
			entity.LevelSenior: {
				"Walk through your approach to EMC compliance for a new board design.",
				"How do you budget power for a battery-operated embedded device?",
				"Describe trade-offs in choosing between an FPGA and a microcontroller.",
				"How do you design for testability in high-volume manufacturing?",
				"Explain signal integrity concerns in high-speed PCB design.",
			},
		},
		FollowupTemplates: []string{
			"Can you elaborate on that?",
			"What component choices would you make and why?",
			"How would you debug that if it failed intermittently?",
		},
	},
	{
		ID:          "general",
		Name:        "General",
		Description: "Behavioral and general questions",
		ReferenceConcepts: []string{
			"experience", "project", "team", "problem", "solution",
			"skill", "collaboration", "leadership",
		},
		QuestionTemplates: map[entity.ExperienceLevel][]string{
			entity.LevelFresher: {
				"Tell me about yourself.",
				"Why do you want to work in this field?",
				"What are your strengths and weaknesses?",
				"Where do you see yourself in 5 years?",
				"Why should we hire you?",
			},
			entity.LevelIntermediate: {
				"Describe a project you are most proud of and your role in it.",
				"Tell me about a time you disagreed with a teammate. How was it resolved?",
				"How do you prioritize when everything is urgent?",
				"Describe a failure and what you learned from it.",
				"How do you keep your skills up to date?",
			},
			entity.LevelSenior: {
				"How do you mentor engineers at different experience levels?",
				"Describe a time you had to make an unpopular decision.",
				"How do you balance technical debt against feature delivery?",
				"Tell me about a cross-team initiative you drove end to end.",
				"How do you handle underperformance on your team?",
			},
		},
		FollowupTemplates: []string{
			"Can you elaborate on that?",
			"What would you do differently in hindsight?",
			"How did you measure success there?",
		},
	},
}

func loadDomains(cfg *Config) error {
	catalogPath := filepath.Join("internal", "config", "domains.json")

	// Check if file exists
	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		fmt.Printf("Warning: domain catalog not found at %s, using default catalog\n", catalogPath)
		cfg.Domains = defaultDomains
		return nil
	}

	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return fmt.Errorf("read domain catalog: %w", err)
	}

	var catalog domainCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("parse domain catalog JSON: %w", err)
	}

	if len(catalog.Domains) == 0 {
		return fmt.Errorf("domain catalog contains no domains: %s", catalogPath)
	}

	for i := range catalog.Domains {
		d := &catalog.Domains[i]
		if d.ID == "" || len(d.TemplatesFor(entity.LevelFresher)) == 0 {
			return fmt.Errorf("domain %d is missing id or fresher question templates", i)
		}
	}

	cfg.Domains = catalog.Domains

	fmt.Printf("Loaded %d interview domains from %s\n", len(cfg.Domains), catalogPath)
	return nil
}
