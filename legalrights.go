// Package legalrights provides a local retrieval-augmented question answering
// tool over a small corpus of labour-law documents. It fetches target pages,
// structures them into section trees, chunks and embeds them into a flat
// vector index, and grounds LLM answers in the retrieved chunks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, ollama/).
package legalrights
