// Command larknotify builds Lark interactive cards from the command line and
// delivers them to a custom-bot webhook.
package main
