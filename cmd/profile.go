package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/ndscreen/internal/session"
	"github.com/abhisek/ndscreen/internal/store"
	"github.com/abhisek/ndscreen/internal/workspace"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change the respondent profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			p := ws.Session.Profile()
			if p == nil {
				return session.ErrNoProfile
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name:   %s\n", p.Name)
			fmt.Fprintf(out, "dob:    %s\n", p.DateOfBirth)
			if age, ok := p.Age(time.Now()); ok {
				fmt.Fprintf(out, "age:    %d\n", age)
			}
			fmt.Fprintf(out, "gender: %s\n", p.Gender)
			return nil
		})
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Complete onboarding with a new profile (overwrites any existing one)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := store.Profile{}
		p.Name, _ = cmd.Flags().GetString("name")
		p.DateOfBirth, _ = cmd.Flags().GetString("dob")
		p.Gender, _ = cmd.Flags().GetString("gender")

		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			if err := ws.Session.CompleteOnboarding(trimProfile(p)); err != nil {
				return err
			}
			if err := ws.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile saved for %s\n", ws.Session.Profile().Name)
			return nil
		})
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change individual profile fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			p := ws.Session.Profile()
			if p == nil {
				return session.ErrNoProfile
			}
			changed := false
			for flag, field := range map[string]*string{
				"name":   &p.Name,
				"dob":    &p.DateOfBirth,
				"gender": &p.Gender,
			} {
				if cmd.Flags().Changed(flag) {
					*field, _ = cmd.Flags().GetString(flag)
					changed = true
				}
			}
			if !changed {
				return fmt.Errorf("nothing to change: pass --name, --dob or --gender")
			}
			if err := ws.Session.UpdateProfile(trimProfile(*p)); err != nil {
				return err
			}
			if err := ws.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "profile updated")
			return nil
		})
	},
}

func trimProfile(p store.Profile) store.Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.DateOfBirth = strings.TrimSpace(p.DateOfBirth)
	p.Gender = strings.TrimSpace(p.Gender)
	return p
}

func init() {
	for _, c := range []*cobra.Command{profileSetCmd, profileEditCmd} {
		c.Flags().String("name", "", "Respondent name")
		c.Flags().String("dob", "", "Date of birth (YYYY-MM-DD)")
		c.Flags().String("gender", "", "Gender ("+strings.Join(session.Genders, ", ")+", or any other text)")
	}
	profileCmd.AddCommand(profileShowCmd, profileSetCmd, profileEditCmd)
}
