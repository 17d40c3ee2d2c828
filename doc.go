// Package faqmatch provides a deterministic nearest-neighbor matcher for a
// fixed FAQ corpus.
//
// A free-text question and every FAQ entry are encoded into bundles of
// named role vectors (question, category, keywords, answer). Matching
// computes a cosine similarity per role, combines the role similarities
// through a fixed weight table, ranks the whole corpus with a full linear
// scan, and returns the top entry when its score clears a confidence
// threshold. Otherwise it abstains, reporting how close the best
// candidate came.
//
// # Basic Usage
//
// Create a client with an encoding engine and load a corpus:
//
//	engine, err := encoder.NewHyperEngine(encoder.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := faqmatch.NewClient(engine, intent.NewRuleExtractor(), nil, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close(ctx)
//
//	if err := client.LoadCorpusFile(ctx, "data/faq.jsonl"); err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.Match(ctx, "I forgot my password")
//
// # Abstention
//
// A result whose confidence falls below the threshold carries nil match
// fields but keeps the confidence and top-3 diagnostics, so callers can
// distinguish "no confident answer" from errors and see how close the
// query came. An empty corpus degrades to always-abstain.
//
// # Concurrency
//
// The corpus snapshot is immutable and swapped atomically on reload;
// concurrent Match calls never observe a half-built corpus. A single
// match is bounded linear work over a small corpus, so no cancellation
// semantics beyond context propagation are provided.
package faqmatch
