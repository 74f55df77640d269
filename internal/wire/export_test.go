package wire

// DispatchForTest exposes Server.dispatch to the external test package.
func DispatchForTest(s *Server, op string, params []string) string {
	return s.dispatch(op, params)
}
