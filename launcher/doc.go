// Package launcher implements the Todoist plugin of an application launcher. The launcher (the host) calls
// HandleQuery with whatever the user typed after the trigger, on every keystroke, and shows the returned items;
// selecting an item runs one of its actions.
//
// HandleQuery never makes remote calls. It reads the snapshot most recently stored by the background syncer,
// which runs when the user asks for a refresh and after every add or complete action.
//
// Queries:
//
//	(empty)          quick-open and refresh entries, followed by today's tasks
//	today            open tasks due today, by day order, at most max_tasks of them
//	add <text>       add a task; Todoist parses dates, #project and @labels out of the text
//	project          all projects
//	project <name>   open tasks of the first project whose name matches
//	<text>           open tasks whose content matches
package launcher // import "github.com/nicolagi/todoist-launcher/launcher"
