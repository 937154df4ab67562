// Package knowledge manages the school Q&A knowledge base.
//
// The knowledge base is a flat JSON file of question/answer pairs. The
// [Store] handles persistence (CRUD with file locking and atomic replace)
// and keeps an in-memory TF-IDF index that is rebuilt after every mutation.
//
// Search looks in both columns: a query is compared against the question
// vectors (normal lookup) and the answer vectors (reverse lookup, "Who is
// Talat Wazir?" matching an answer that mentions the name). The better
// cosine score wins, and the score is surfaced as the confidence value.
//
// Admin credentials live in a second flat file next to the Q&A data; the
// password is stored as a bcrypt hash.
package knowledge
