// Package voice turns streamed microphone audio into weights and commands.
//
// A Pipeline owns one worker goroutine. The audio source pushes raw PCM
// blocks from its own callback goroutine; the worker feeds them to a streaming
// Recognizer and hands every finished utterance to an Interpreter. Accepted
// results are delivered to a Handler on the worker goroutine, one at a time
// and in recognition order. Handlers that touch UI or layout state must
// marshal the call onto the goroutine that owns that state.
//
// Suspending keeps capturing audio but stops recognition; resuming discards
// everything captured while suspended so stale speech is never recognized.
package voice
