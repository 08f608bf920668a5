/*
Package app contains the building blocks of a quorum application: the
router dispatching messages to handlers by path, the decorator chain, the
transaction envelope with its decoder, and the store application that
initializes state from a genesis and commits versions of it.

A complete application is assembled by NewApplication.
*/
package app
