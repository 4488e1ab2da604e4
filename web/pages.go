package web

import "html/template"

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Log in</title></head>
<body>
<h1>Log in</h1>
<form method="post">
  <label>Username <input type="text" name="username"></label>
  <label>Password <input type="password" name="password"></label>
  <button type="submit">Log in</button>
</form>
</body>
</html>
`))

var homePage = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head><title>Home</title></head>
<body>
<h1>Welcome{{if .}}, {{.Username}}{{end}}</h1>
<p><a href="/logout">Log out</a></p>
</body>
</html>
`))

var logoutPage = template.Must(template.New("logout").Parse(`<!DOCTYPE html>
<html>
<head><title>Logged out</title></head>
<body>
<h1>You have been logged out</h1>
<p><a href="/login">Log in again</a></p>
</body>
</html>
`))

var failPage = template.Must(template.New("fail").Parse(`<!DOCTYPE html>
<html>
<head><title>Not authorized</title></head>
<body>
<h1>Not authorized</h1>
<p><a href="/login">Log in</a></p>
</body>
</html>
`))
