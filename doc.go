/*
Package quorum defines the interfaces used throughout the module: storage,
transactions, handlers and decorators. It also carries the request context
helpers (block height and time, chain id, logger), conditions and addresses
used for authorization, and the UnixTime type.

Extensions live under x/, the application glue under app/.
*/
package quorum
