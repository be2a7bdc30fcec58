// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for live order tracking.
//
// # Available Jobs
//
// 1. TrackingRefreshJob - Periodically re-broadcasts the tracking snapshot of
// every order that currently has subscribers, so open streams keep receiving
// fresh ETAs even when no status transition happens.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(broadcaster, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
