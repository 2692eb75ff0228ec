package app

// SeatsPerGame is the fixed table size; Kora is strictly head-to-head.
// Kept centralized so tests and the match handler agree on one value.
const SeatsPerGame = 2
