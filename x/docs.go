/*
Package x contains some standard extensions

Extensions implement common functionality (Handler, Decorator, etc.)
for use in an application. They also define the Authenticator contract
that handlers use to learn who signed the request, so that the
authentication system can be plugged in without touching the handlers.
*/
package x
