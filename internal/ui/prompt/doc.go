// Package prompt asks the user questions on the terminal.
//
// Questions are drawn on stderr because stdout carries paths for the shell
// wrapper. [Confirmer] and [Ask] return the default answer without asking
// when [Interactive] is false, e.g. under CI or with WT_NO_PROMPT=1.
package prompt
