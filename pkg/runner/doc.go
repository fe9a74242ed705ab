/*
Package runner implements the interaction loop of a desk session.

The runner owns no domain knowledge. It asks the menu for the next command,
invokes it and interprets the result:

  - domain.ErrQuit stops the session.
  - a *domain.InputError is printed and the menu is presented again.
  - end of input (io.EOF, Ctrl+C, a cancelled context) ends the session quietly.
  - any other error ends the session and is returned to the caller.

# Usage

	r := runner.NewRunner(m, console.New(os.Stdin, os.Stdout),
		runner.WithSessionID(uuid.NewString()),
		runner.WithLogger(logger),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
