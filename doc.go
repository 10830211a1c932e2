// Package vaidya embeds the Ayurvedic consultation engine in a Go program.
//
// The engine ranks guidance from a bundled reference corpus (articles, home
// remedies, classical text excerpts and dosha guides) and answers a
// consultation turn either with prose from a remote assistant or, when the
// assistant is unavailable or fails, with an answer composed locally from the
// same citations. Citations never depend on the remote call.
//
// # Search only
//
//	engine, _ := vaidya.New()
//	for _, r := range engine.Search(ctx, "I can't sleep at night") {
//		fmt.Println(r.Kind, r.Title, r.Score)
//	}
//
// # Consultation
//
//	engine, _ := vaidya.New(vaidya.WithOpenAI(vaidya.OpenAIConfig{APIKey: key}))
//	defer engine.Close()
//
//	s := engine.NewSession(ctx, "user-42")
//	reply, err := s.Submit(ctx, "acidity after meals", "Pitta")
//	fmt.Println(reply.Message.Text, reply.Path)
//
// # Token budget
//
// WithTokenBudget caps remote spend per UTC day and month. A turn past the
// cap is answered locally and its Reply.Reason matches ErrBudgetExceeded.
//
//	engine, _ := vaidya.New(
//		vaidya.WithOpenAI(vaidya.OpenAIConfig{APIKey: key}),
//		vaidya.WithTokenBudget(200_000, 0),
//		vaidya.WithValkey("localhost:6379", ""),
//	)
//	u, _ := engine.Usage(ctx, "day")
//	fmt.Println(u.Used, u.Remaining, u.End)
package vaidya
