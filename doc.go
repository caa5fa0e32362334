// Package recgo provides an embedded conversational product-retrieval
// engine for Go.
//
// Recgo serves multi-turn product recommendation over a precomputed
// catalog: exact vector search for the opening query, then cheap
// in-memory reranking of the captured candidate pool for follow-up
// turns, plus a crash-safe durable cache for generated review summaries.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	snap, _ := catalog.Load(ctx, blobstore.NewLocalStore("./artifacts"), catalog.DefaultArtifactNames)
//	eng, _ := recgo.NewFromSnapshot(snap)
//
//	sess := eng.NewSession()
//	recs, _ := sess.Search(ctx, queryEmbedding, 6, 30)   // first turn
//	recs, _ = sess.Rerank(ctx, followupEmbedding, 6)     // refine, no index search
//
// # Conversation Model
//
// A Session captures the top candidates of the first search as its
// buffer. Follow-up turns rerank ONLY that buffer: a refinement narrows
// within the established pool and never surfaces products outside it.
// A structurally new query is expressed by calling Search again, which
// replaces the buffer wholesale.
//
// # Scoring
//
// First-turn scores are result-set-relative (1 - d/max(d) over the
// returned distances); rerank scores are cosine similarity between the
// follow-up embedding and each candidate's combined product+review
// vector. The two scales are not comparable across turns.
//
// # Summaries
//
// SummaryService composes a Summarizer collaborator with the durable
// cache, a rate limiter, and bounded concurrency. Collaborator failures
// degrade per candidate, never the batch.
package recgo
