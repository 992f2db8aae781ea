// Package skills holds the curated skill keyword catalog and the keyword
// matching used to detect skills in resumes and gaps against job descriptions.
package skills

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const DefaultMissingLimit = 5

type Category string

const (
	CategoryLanguages       Category = "programming_languages"
	CategoryFrameworks      Category = "frameworks_libraries"
	CategoryDatabases       Category = "databases"
	CategoryCloud           Category = "cloud_platforms"
	CategoryDevOps          Category = "devops_tools"
	CategoryAIML            Category = "ai_ml"
	CategoryBlockchain      Category = "blockchain"
	CategorySecurity        Category = "security"
	CategoryDevRel          Category = "devrel"
	CategoryDataEngineering Category = "data_engineering"
	CategoryGeneral         Category = "general"
)

type Skill struct {
	Name     string
	Category Category
}

func (s Skill) keyword() string {
	return strings.ToLower(s.Name)
}

// Catalog is ordered; detection results follow this order.
var Catalog = build(map[Category][]string{
	CategoryLanguages: {
		"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust",
		"Swift", "Kotlin", "PHP", "Ruby", "Scala", "R", "MATLAB", "SQL",
	},
	CategoryFrameworks: {
		"React", "Vue", "Angular", "Node.js", "Express", "Django", "Flask",
		"FastAPI", "Spring", "Laravel", "Rails", "TensorFlow", "PyTorch",
		"scikit-learn", "Pandas", "NumPy", "Matplotlib", "Seaborn",
	},
	CategoryDatabases: {
		"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch", "SQLite",
		"Cassandra", "DynamoDB", "Neo4j",
	},
	CategoryCloud: {
		"AWS", "Azure", "GCP", "Google Cloud", "Amazon Web Services",
		"Microsoft Azure", "Cloudflare",
	},
	CategoryDevOps: {
		"Docker", "Kubernetes", "Terraform", "Jenkins", "GitLab",
		"GitHub Actions", "Ansible", "Prometheus", "Grafana", "ELK Stack",
	},
	CategoryAIML: {
		"Machine Learning", "Deep Learning", "Neural Networks", "NLP",
		"Natural Language Processing", "Computer Vision",
		"Reinforcement Learning", "Data Science", "Data Analysis", "MLOps",
	},
	CategoryBlockchain: {
		"Blockchain", "Web3", "Solidity", "Ethereum", "Smart Contracts", "DeFi",
		"NFT", "Cairo", "Starknet", "ZKProofs", "Zero Knowledge",
	},
	CategorySecurity: {
		"Cybersecurity", "Penetration Testing", "Vulnerability Assessment",
		"Security Auditing", "Cryptography", "Network Security",
	},
	CategoryDevRel: {
		"Developer Relations", "Technical Writing", "Community Management",
		"Developer Advocacy", "Content Creation", "Documentation",
	},
	CategoryDataEngineering: {
		"Data Engineering", "ETL", "Data Pipelines", "Apache Spark", "Kafka",
		"Airflow", "Data Warehousing", "Big Data",
	},
	CategoryGeneral: {
		"Git", "Linux", "Bash", "Agile", "Scrum", "DevOps", "CI/CD", "REST API",
		"GraphQL", "Microservices", "API Development",
	},
})

var categoryOrder = []Category{
	CategoryLanguages,
	CategoryFrameworks,
	CategoryDatabases,
	CategoryCloud,
	CategoryDevOps,
	CategoryAIML,
	CategoryBlockchain,
	CategorySecurity,
	CategoryDevRel,
	CategoryDataEngineering,
	CategoryGeneral,
}

func build(byCategory map[Category][]string) []Skill {
	var out []Skill
	for _, category := range categoryOrder {
		for _, name := range byCategory[category] {
			out = append(out, Skill{Name: name, Category: category})
		}
	}
	return out
}

// Normalize lowercases text and strips diacritics.
func Normalize(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		out = text
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// contains reports whether keyword occurs in text as a whole term: the
// characters around the match must not be letters or digits.
func contains(text, keyword string) bool {
	if keyword == "" {
		return false
	}
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], keyword)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(keyword)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		offset = start + 1
	}
	return false
}

// boundaryBefore reports whether the rune ending at byte i is not part of a word.
func boundaryBefore(text string, i int) bool {
	if i <= 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

// boundaryAfter reports whether the rune starting at byte i is not part of a word.
func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
