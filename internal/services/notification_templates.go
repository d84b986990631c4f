package services

const assignmentSMSTemplate = "New maintenance assignment: %s (%s priority) in unit %s. Request %s."

const completionEmailSubject = "Your maintenance request has been completed"

const completionEmailText = `Hi %s,

Work on your %s request has been completed.

Description: %s
Completed at: %s

If the issue persists, reply to this email or submit a new request.
`

const completionEmailHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>%s</h2>
  <p>Hi %s,</p>
  <p>Work on your <strong>%s</strong> request has been completed.</p>
  <table cellpadding="4">
    <tr><td><strong>Description</strong></td><td>%s</td></tr>
    <tr><td><strong>Completed at</strong></td><td>%s</td></tr>
  </table>
  <p>If the issue persists, reply to this email or submit a new request.</p>
</body>
</html>`
