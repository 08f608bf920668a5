/*
Package gconf provides a toolset for managing an extension configuration.

Each extension can store a single configuration object in the database. The
object is a protobuf message, saved under the "_c:<package name>" key. It
can be set from the genesis file, using the "conf" section:

	{
	  "conf": {
	    "multisig": {"max_participants": 100}
	  }
	}

Use Load to read the configuration from within a handler.
*/
package gconf
