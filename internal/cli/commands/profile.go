package commands

import (
	"context"
	"errors"
	"fmt"

	"AtlasAdmin/internal/cli/bootstrap"
	"AtlasAdmin/internal/cli/session"
	"AtlasAdmin/internal/cli/view"
	"AtlasAdmin/internal/config"
)

type profilePhoneCmd struct{}

func (profilePhoneCmd) Name() string        { return "profile-phone" }
func (profilePhoneCmd) Description() string { return "Change the phone number of the current staff account" }
func (profilePhoneCmd) Usage() string       { return "profile-phone <new-phone>" }

func (profilePhoneCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	_, sess := bootstrap.Session(cfg)
	if sess.User == nil {
		return errors.New("no stored staff identity; login first")
	}
	if err := sess.UpdateProfile(ctx, session.ProfileUpdate{PhoneNumber: args[0]}, sess.User.ID); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Phone number updated")
	return nil
}

type profilePasswordCmd struct{}

func (profilePasswordCmd) Name() string        { return "profile-password" }
func (profilePasswordCmd) Description() string { return "Change the password of the current staff account" }
func (profilePasswordCmd) Usage() string       { return "profile-password" }

func (profilePasswordCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	_, sess := bootstrap.Session(cfg)
	if sess.User == nil {
		return errors.New("no stored staff identity; login first")
	}
	password, err := view.PromptPassword(Out, "New password")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("please enter a new password")
	}
	again, err := view.PromptPassword(Out, "Repeat password")
	if err != nil {
		return err
	}
	if password != again {
		return errors.New("passwords do not match")
	}
	if err := sess.UpdateProfile(ctx, session.ProfileUpdate{Password: password}, sess.User.ID); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Password updated")
	return nil
}

func init() {
	RegisterCmd(profilePhoneCmd{})
	RegisterCmd(profilePasswordCmd{})
}
