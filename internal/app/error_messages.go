// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// smart-notes command-line client.
//
// All Msg* constants are human-readable strings written to the terminal to
// describe the outcome of a command. Keeping them in one place keeps the
// wording consistent across commands.
package app

const (
	// MsgUsage lists the supported commands.
	MsgUsage = `usage: smart-notes [flags] <command> [args]

commands:
  add <note-json>             store a new note
  update <id> <patch-json>    merge a patch into a note
  rm <id>                     delete a note
  get <id>                    print one note
  list [cursor] [limit]       print one page of notes, newest first
  recent [n]                  print the n newest notes
  today                       print today's aggregates
  sync                        reconcile with the remote service now
  run                         keep syncing in the background until interrupted
  version                     print build information`

	// MsgInvalidDataProvided is printed when a JSON argument cannot be decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgMissingArgument is printed when a command is called without a
	// required operand.
	MsgMissingArgument = "missing argument"

	// MsgInvalidCursor is printed when the list cursor is not a unix
	// millisecond timestamp.
	MsgInvalidCursor = "cursor must be a unix millisecond timestamp"

	// MsgInvalidLimit is printed when the recent count is not a positive number.
	MsgInvalidLimit = "limit must be a positive number"

	// MsgUnknownCommand is printed for commands the client does not know.
	MsgUnknownCommand = "unknown command"

	// MsgNoteNotFound is printed when the addressed note does not exist locally.
	MsgNoteNotFound = "note not found"

	// MsgNothingToUpdate is printed when a patch sets no field.
	MsgNothingToUpdate = "patch changes nothing"

	// MsgNoteRemoved confirms a delete.
	MsgNoteRemoved = "note removed"

	// MsgSyncFinished confirms a manual sync pass.
	MsgSyncFinished = "sync finished"

	// MsgSyncFailed is printed when a manual sync pass reported errors. Local
	// data stays intact; the next pass retries.
	MsgSyncFailed = "sync finished with errors, local data is unaffected"

	// MsgBackgroundSync is printed when the run command starts.
	MsgBackgroundSync = "syncing in the background, press Ctrl+C to stop"
)
