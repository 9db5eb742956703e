package main

import (
	"fmt"
	"net/http"

	"github.com/rewardlab/backend/internal/middleware"
	"github.com/rewardlab/backend/pkg/router"
	"github.com/rewardlab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadEndpoint()
	s.loadStorage()
	s.loadRedis()
	s.loadTokenEngine()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting the api server on port %s", s.configs.ApiServer.Port)
	if s.configs.ApiServer.Cert != "" {
		return s.server.ListenAndServeTLS(s.configs.ApiServer.Cert, s.configs.ApiServer.Key)
	}

	return s.server.ListenAndServe()
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.AllowCors())

	if s.configs.Storage.Backend == "local" {
		s.router.Static("/uploads/", s.configs.Storage.LocalDir)
	}

	// Public API.
	router.POST(s.router, "/login", s.authDomain.Login)
	router.GET(s.router, "/getTasks", s.taskDomain.GetTasks)
	router.GET(s.router, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)
	router.GET(s.router, "/getSettings", s.settingDomain.GetSettings)

	// These APIs need an access token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.WithAuthed())
	{
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)

		router.GET(authRouter, "/getAdOffer", s.rewardDomain.GetAdOffer)
		router.POST(authRouter, "/watchAd", s.rewardDomain.WatchAd)
		router.POST(authRouter, "/claimDaily", s.rewardDomain.ClaimDaily)
		router.POST(authRouter, "/registerReferral", s.rewardDomain.RegisterReferral)

		router.POST(authRouter, "/setProofIntent", s.submissionDomain.SetProofIntent)
		router.POST(authRouter, "/cancelProofIntent", s.submissionDomain.CancelProofIntent)
		router.POST(authRouter, "/submitProof", s.submissionDomain.SubmitProof)
		router.GET(authRouter, "/getMySubmissions", s.submissionDomain.GetMySubmissions)

		// Role requirements are enforced inside the domains.
		router.GET(authRouter, "/getPendingSubmissions", s.submissionDomain.GetPendingList)
		router.POST(authRouter, "/reviewSubmission", s.submissionDomain.Review)
		router.POST(authRouter, "/createTask", s.taskDomain.Create)
		router.POST(authRouter, "/updateTask", s.taskDomain.Update)
		router.POST(authRouter, "/deleteTask", s.taskDomain.Delete)
		router.POST(authRouter, "/updateSetting", s.settingDomain.UpdateSetting)
	}
}
