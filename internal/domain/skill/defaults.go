package skill

var defaultSkills = []string{
	// web
	"javascript", "typescript", "react", "angular", "vue", "node.js", "express", "next.js", "nest.js",
	"html", "css", "tailwind", "redux", "webpack", "vite", "graphql", "rest api",

	// backend and languages
	"python", "java", "c++", "c#", "c", "go", "golang", "rust", "php", "ruby", "scala",
	"django", "flask", "spring boot", ".net", "laravel", "rails",

	// databases
	"sql", "mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra", "dynamodb",

	// cloud and devops
	"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "jenkins", "github actions",
	"gitlab ci", "circleci", "terraform", "ansible", "linux", "bash", "shell scripting",

	// data and ml
	"machine learning", "deep learning", "ai", "data science", "nlp", "computer vision",
	"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "keras", "matplotlib", "seaborn",
	"statistics", "linear algebra", "r", "spark", "hadoop",

	// mobile
	"react native", "flutter", "swift", "kotlin", "ios", "android", "dart",

	// qa
	"selenium", "cypress", "jest", "mocha", "chai", "junit", "testing", "qa",

	// tools and process
	"git", "agile", "scrum", "jira", "confluence", "figma", "adobe xd", "postman",

	// soft skills
	"leadership", "communication", "teamwork", "problem solving", "project management",
	"critical thinking", "adaptability", "time management",
}

var defaultRoles = []RoleProfile{
	{"frontend developer", []string{"react", "javascript", "typescript", "html", "css", "tailwind", "git", "redux"}},
	{"backend developer", []string{"node.js", "python", "java", "sql", "mongodb", "api", "git", "docker"}},
	{"full stack developer", []string{"react", "node.js", "javascript", "typescript", "sql", "mongodb", "git", "aws"}},
	{"mobile developer", []string{"react native", "flutter", "ios", "android", "swift", "kotlin", "git"}},
	{"data scientist", []string{"python", "machine learning", "statistics", "sql", "pandas", "numpy", "tensorflow"}},
	{"data analyst", []string{"sql", "python", "excel", "tableau", "power bi", "statistics", "data visualization"}},
	{"devops engineer", []string{"docker", "kubernetes", "aws", "linux", "jenkins", "terraform", "ci/cd", "python"}},
	{"cloud architect", []string{"aws", "azure", "gcp", "cloud security", "networking", "terraform", "docker"}},
	{"software engineer", []string{"javascript", "python", "java", "git", "sql", "problem solving", "algorithms"}},
	{"qa engineer", []string{"selenium", "cypress", "testing", "javascript", "python", "sql", "git"}},
	{"security engineer", []string{
		"network security", "linux", "python", "cybersecurity", "penetration testing", "firewalls",
	}},
	{"ui/ux designer", []string{"figma", "adobe xd", "prototyping", "wireframing", "css", "html", "user research"}},
	{"product manager", []string{
		"product management", "agile", "scrum", "jira", "communication", "roadmap", "analytics",
	}},
	{"ai engineer", []string{"python", "machine learning", "deep learning", "tensorflow", "pytorch", "nlp", "api"}},
	{"machine learning engineer", []string{
		"python", "machine learning", "tensorflow", "pytorch", "scikit-learn", "sql", "aws",
	}},
}

var defaultTitles = []string{
	"software engineer", "developer", "frontend developer", "backend developer",
	"full stack", "data scientist", "data analyst", "project manager", "product manager",
	"designer", "ux designer", "ui designer", "devops engineer", "qa engineer",
	"system administrator", "network engineer", "database administrator", "cloud architect",
}

var defaultCertifications = []string{
	"aws certified", "azure certified", "google cloud certified", "pmp", "scrum master", "cissp", "oracle certified",
}

// Default returns the built-in lexicon.
func Default() *Lexicon {
	return New(defaultSkills, defaultRoles, defaultTitles, defaultCertifications)
}
