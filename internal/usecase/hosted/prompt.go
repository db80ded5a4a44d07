package hosted

import "strings"

const systemPrompt = `You are an expert resume analyzer. Analyze the provided resume and extract:
1. Skills (technical and soft skills as array)
2. Years of experience (numeric)
3. Education level (high_school, bachelors, masters, phd)
4. Job titles held (array)
5. Skill gaps for modern job market (array of objects with skill name and importance)
6. Learning recommendations (array of objects with course name, platform, and url)
7. Project suggestions to strengthen resume (array of objects with title, description, skills)
8. ATS score (0-100 based on formatting, keywords, structure)
9. Predicted suitable roles (array of job titles)
10. Job match score (0-100) comparing the resume against the provided job description, based on skills overlap, seniority fit, responsibilities alignment, and domain relevance
11. Matching skills (array of strings) - skills present in both JD and Resume
12. Missing skills (array of strings) - skills required in JD but not present in Resume
13. Extra skills (array of strings) - skills present in Resume but not in JD

Return ONLY valid JSON with these exact keys: extracted_skills, experience_years, education_level, job_titles, skill_gaps, learning_recommendations, project_suggestions, ats_score, predicted_roles, job_match_score, matching_skills, missing_skills, extra_skills. No markdown, no explanation.`

const noJobDescription = "No specific job description provided"

// BuildPrompt renders the analysis request for one resume.
func BuildPrompt(resumeText, jobDescription string) Prompt {
	jd := jobDescription
	if strings.TrimSpace(jd) == "" {
		jd = noJobDescription
	}

	var b strings.Builder
	b.WriteString("Analyze this resume against the job description.\n\nResume:\n")
	b.WriteString(resumeText)
	b.WriteString("\n\nJob Description:\n")
	b.WriteString(jd)

	return Prompt{System: systemPrompt, User: b.String()}
}
