// Package resumatch scores resumes against job descriptions in-process.
//
// The client extracts skills, experience, education and titles from a resume,
// aligns them with the skills a job description asks for, and returns an
// ATS-style score with gap analysis and learning recommendations.
//
//	client, _ := resumatch.New(
//	    resumatch.WithEmbedder(myEmbedder),
//	    resumatch.WithLogger(slog.Default()),
//	)
//	res, err := client.Analyze(ctx, resumeText, jobDescription)
//	fmt.Println(res.ATSScore, res.MissingSkills)
//
// Without an embedder, skills are compared by exact name and semantic
// components fall back to fixed scores; res.Degradations names them.
package resumatch
